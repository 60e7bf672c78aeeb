package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowJobStore_CreateRequiresDefinition(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	job := (&models.WorkflowJobCreate{DefinitionID: "missing", JobName: "run-1", TriggerData: "{}"}).Record("o1")
	created, err := s.jobs.Create(ctx, job)

	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrWorkflowDefinitionNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrModelProviderNotFound)
	assert.Zero(t, countRows(t, s.db, "ai_workflow_job"))
}

func TestWorkflowJobStore_SoftDeletedDefinitionStillExists(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)
	_, err = s.definitions.SoftDelete(ctx, def.ID)
	require.NoError(t, err)

	job, err := s.jobs.Create(ctx, (&models.WorkflowJobCreate{DefinitionID: def.ID, JobName: "run-1"}).Record("o1"))
	require.NoError(t, err)
	assert.Equal(t, def.ID, job.DefinitionID)
}

func TestWorkflowJobStore_DefinitionScenario(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, (&models.WorkflowDefinitionCreate{
		Name:     "daily-report",
		Version:  "1.0.0",
		IsActive: boolPtr(true),
		Pipeline: "components: {}",
	}).Record("o1"))
	require.NoError(t, err)

	_, err = s.jobs.Create(ctx, (&models.WorkflowJobCreate{
		DefinitionID: def.ID,
		JobName:      "run-1",
		Status:       string(models.JobStatusPending),
		TriggerData:  `{"source":"cron"}`,
	}).Record("o1"))
	require.NoError(t, err)

	jobs, err := s.jobs.List(ctx, "o1", WorkflowJobQuery{DefinitionID: &def.ID})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "run-1", jobs[0].JobName)
}

func TestWorkflowJobStore_QueriesAndUpdates(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	defA, err := s.definitions.Create(ctx, newDefinition("o1", "a"))
	require.NoError(t, err)
	defB, err := s.definitions.Create(ctx, newDefinition("o1", "b"))
	require.NoError(t, err)

	newJob := func(def *models.WorkflowDefinition, name string, owner string) *models.WorkflowJob {
		job, err := s.jobs.Create(ctx, (&models.WorkflowJobCreate{DefinitionID: def.ID, JobName: name}).Record(owner))
		require.NoError(t, err)
		return job
	}
	j1 := newJob(defA, "nightly-1", "o1")
	j2 := newJob(defA, "nightly-2", "o1")
	j3 := newJob(defB, "adhoc", "o1")
	newJob(defA, "other-owner", "o2")

	started := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	completed := started.Add(90 * time.Second)
	running, err := s.jobs.Update(ctx, j1.ID, &models.WorkflowJobUpdate{
		Status:    models.Some(string(models.JobStatusRunning)),
		StartedAt: models.Some(started),
	})
	require.NoError(t, err)
	assert.Equal(t, "running", running.Status)
	require.NotNil(t, running.StartedAt)
	assert.True(t, started.Equal(*running.StartedAt))
	assert.Nil(t, running.CompletedAt)
	assert.Equal(t, "nightly-1", running.JobName)

	done, err := s.jobs.Update(ctx, j2.ID, &models.WorkflowJobUpdate{
		Status:           models.Some(string(models.JobStatusCompleted)),
		CompletedAt:      models.Some(completed),
		ExecutionSeconds: models.Some(90.0),
		ResultData:       models.Some(`{"rows":10}`),
	})
	require.NoError(t, err)
	assert.Nil(t, done.StartedAt, "timestamps are independent of status")
	require.NotNil(t, done.ExecutionSeconds)
	assert.Equal(t, 90.0, *done.ExecutionSeconds)

	byStatus, err := s.jobs.ListByStatus(ctx, "o1", string(models.JobStatusPending))
	require.NoError(t, err)
	assert.Equal(t, []string{j3.ID}, ids(byStatus))

	byDefinition, err := s.jobs.ListByDefinition(ctx, "o1", defA.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{j2.ID, j1.ID}, ids(byDefinition))

	named, err := s.jobs.List(ctx, "o1", WorkflowJobQuery{JobName: strPtr("nightly"), Status: strPtr("running")})
	require.NoError(t, err)
	assert.Equal(t, []string{j1.ID}, ids(named))

	startedRange, err := s.jobs.List(ctx, "o1", WorkflowJobQuery{StartedAfter: timePtr(started.Add(-time.Minute))})
	require.NoError(t, err)
	assert.Equal(t, []string{j1.ID}, ids(startedRange))

	completedRange, err := s.jobs.List(ctx, "o1", WorkflowJobQuery{CompletedBefore: timePtr(completed)})
	require.NoError(t, err)
	assert.Equal(t, []string{j2.ID}, ids(completedRange))

	bySeconds, err := s.jobs.List(ctx, "o1", WorkflowJobQuery{ListOptions: ListOptions{OrderBy: "execution_time_seconds", Order: OrderDesc}, DefinitionID: &defA.ID, Status: strPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, []string{j2.ID}, ids(bySeconds))

	_, err = s.jobs.SoftDelete(ctx, j3.ID)
	require.NoError(t, err)
	byStatus, err = s.jobs.ListByStatus(ctx, "o1", string(models.JobStatusPending))
	require.NoError(t, err)
	assert.Empty(t, byStatus)

	other, err := s.jobs.List(ctx, "o2", WorkflowJobQuery{})
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestDeepLearningModelStore_CreateRequiresProvider(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	m := (&models.DeepLearningModelCreate{ModelName: "gpt-x", ModelType: "llm", ProviderID: "missing"}).Record("o1")
	created, err := s.models.Create(ctx, m)

	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrModelProviderNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, s.db, "dl_models"))
}

func TestDeepLearningModelStore_ProviderScenario(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	provider, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme"}).Record("o1"))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProviderType, provider.ProviderType)

	m, err := s.models.Create(ctx, (&models.DeepLearningModelCreate{ModelName: "gpt-x", ModelType: "llm", ProviderID: provider.ID}).Record("o1"))
	require.NoError(t, err)

	fetched, err := s.models.Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "acme", fetched.ProviderName)

	_, err = s.providers.Update(ctx, provider.ID, &models.ModelProviderUpdate{ProviderName: models.Some("acme-renamed")})
	require.NoError(t, err)
	fetched, err = s.models.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", fetched.ProviderName, "the copied name is not re-synced")

	byProvider, err := s.models.List(ctx, "o1", DeepLearningModelQuery{ProviderName: strPtr("acme")})
	require.NoError(t, err)
	assert.Equal(t, []string{m.ID}, ids(byProvider))

	_, err = s.providers.SoftDelete(ctx, provider.ID)
	require.NoError(t, err)
	still, err := s.models.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, still.Deleted, "deleting a provider does not cascade")
}

func TestDeepLearningModelStore_FiltersAndUpdate(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	acme, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme"}).Record("o1"))
	require.NoError(t, err)
	globex, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "globex", ProviderType: "openai"}).Record("o1"))
	require.NoError(t, err)

	create := func(name, typ string, provider *models.ModelProvider) *models.DeepLearningModel {
		m, err := s.models.Create(ctx, (&models.DeepLearningModelCreate{ModelName: name, ModelType: typ, ProviderID: provider.ID}).Record("o1"))
		require.NoError(t, err)
		return m
	}
	m1 := create("gpt-x", "llm", acme)
	m2 := create("embed-1", "embedding", acme)
	m3 := create("gpt-x", "llm", globex)

	got, err := s.models.List(ctx, "o1", DeepLearningModelQuery{ModelName: strPtr("gpt-x")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{m1.ID, m3.ID}, ids(got))

	got, err = s.models.List(ctx, "o1", DeepLearningModelQuery{ModelName: strPtr("gpt-x"), ProviderName: strPtr("globex")})
	require.NoError(t, err)
	assert.Equal(t, []string{m3.ID}, ids(got))

	got, err = s.models.List(ctx, "o1", DeepLearningModelQuery{ModelName: strPtr("gpt")})
	require.NoError(t, err)
	assert.Empty(t, got, "model name is an exact match")

	got, err = s.models.List(ctx, "o1", DeepLearningModelQuery{ListOptions: ListOptions{OrderBy: "model_type", Order: OrderAsc}})
	require.NoError(t, err)
	assert.Equal(t, m2.ID, got[0].ID)

	updated, err := s.models.Update(ctx, m1.ID, &models.DeepLearningModelUpdate{Config: models.Some(`{"temperature":0}`)})
	require.NoError(t, err)
	require.NotNil(t, updated.Config)
	assert.Equal(t, `{"temperature":0}`, *updated.Config)
	assert.Equal(t, acme.ID, updated.ProviderID)
	assert.Equal(t, "acme", updated.ProviderName)
}

func TestModelProviderStore_UpdateAppliesFields(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	p, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme", APIKey: strPtr("old")}).Record("o1"))
	require.NoError(t, err)

	updated, err := s.providers.Update(ctx, p.ID, &models.ModelProviderUpdate{
		APIKey:      models.Some("new-key"),
		APIBaseURL:  models.Some("https://api.acme.test"),
		ExtraConfig: models.Some(`{"region":"eu"}`),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new-key", *updated.APIKey)
	assert.Equal(t, "https://api.acme.test", *updated.APIBaseURL)
	assert.Equal(t, `{"region":"eu"}`, *updated.ExtraConfig)
	assert.Equal(t, "acme", updated.ProviderName)
	assert.Nil(t, updated.Comment)

	cleared, err := s.providers.Update(ctx, p.ID, &models.ModelProviderUpdate{APIKey: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.APIKey)
	assert.Equal(t, "https://api.acme.test", *cleared.APIBaseURL)
}

func TestModelProviderStore_Filters(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	a, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme", ProviderType: "openai"}).Record("o1"))
	require.NoError(t, err)
	b, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "globex"}).Record("o1"))
	require.NoError(t, err)
	_, err = s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme"}).Record("o2"))
	require.NoError(t, err)

	got, err := s.providers.List(ctx, "o1", ModelProviderQuery{ProviderType: strPtr("custom")})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(got))

	got, err = s.providers.List(ctx, "o1", ModelProviderQuery{ProviderName: strPtr("acme")})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids(got))

	got, err = s.providers.List(ctx, "o1", ModelProviderQuery{ListOptions: ListOptions{OrderBy: "provider_name", Order: OrderAsc}})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(got))
}
