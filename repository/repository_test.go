package repository

import (
	"context"
	"testing"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefinition(owner, name string) *models.WorkflowDefinition {
	return (&models.WorkflowDefinitionCreate{Name: name, Pipeline: "components: {}"}).Record(owner)
}

func TestRepository_CreateAssignsIdentityAndAudit(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "daily-report"))
	require.NoError(t, err)

	assert.Len(t, def.ID, 36)
	assert.Equal(t, "o1", def.Owner)
	assert.False(t, def.Deleted)
	assert.True(t, def.CreatedAt.Equal(def.UpdatedAt))
	assert.True(t, def.CreatedAt.Equal(s.clock.peek()))

	got, err := s.definitions.Get(ctx, def.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "daily-report", got.Name)
	assert.Equal(t, models.DefaultWorkflowVersion, got.Version)
	assert.True(t, got.IsActive)
	assert.True(t, got.CreatedAt.Equal(def.CreatedAt))
}

func TestRepository_CreateUsesDefaultOwner(t *testing.T) {
	s := setupStores(t, WithDefaultOwner("placeholder"))

	def, err := s.definitions.Create(context.Background(), newDefinition("", "n"))
	require.NoError(t, err)
	assert.Equal(t, "placeholder", def.Owner)
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	s := setupStores(t)

	got, err := s.definitions.Get(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetIgnoresOwner(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)

	got, err := s.definitions.Get(ctx, def.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "o1", got.Owner)
}

func TestRepository_ListByOwnerIncludesDeleted(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	a, err := s.definitions.Create(ctx, newDefinition("o1", "a"))
	require.NoError(t, err)
	b, err := s.definitions.Create(ctx, newDefinition("o1", "b"))
	require.NoError(t, err)
	_, err = s.definitions.Create(ctx, newDefinition("o2", "c"))
	require.NoError(t, err)

	_, err = s.definitions.SoftDelete(ctx, b.ID)
	require.NoError(t, err)

	all, err := s.definitions.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(all))
}

func TestRepository_SoftDelete(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)

	deleted, err := s.definitions.SoftDelete(ctx, def.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.Deleted)
	assert.True(t, deleted.UpdatedAt.After(def.UpdatedAt))
	assert.True(t, deleted.CreatedAt.Equal(def.CreatedAt))

	listed, err := s.definitions.List(ctx, "o1", WorkflowDefinitionQuery{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	got, err := s.definitions.Get(ctx, def.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Deleted)

	again, err := s.definitions.SoftDelete(ctx, def.ID)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.True(t, again.Deleted)
}

func TestRepository_SoftDeleteMissing(t *testing.T) {
	s := setupStores(t)

	got, err := s.providers.SoftDelete(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_HardDelete(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)

	require.NoError(t, s.definitions.HardDelete(ctx, def.ID))
	got, err := s.definitions.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, countRows(t, s.db, "ai_workflow_def"))

	assert.NoError(t, s.definitions.HardDelete(ctx, def.ID))
}

func TestRepository_PartialUpdateTouchesOnlyPatchedFields(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	create := &models.WorkflowDefinitionCreate{
		Name:        "daily-report",
		Description: strPtr("reports"),
		Pipeline:    "a: 1",
		Version:     "1.2.0",
		Tags:        strPtr("x,y"),
	}
	def, err := s.definitions.Create(ctx, create.Record("o1"))
	require.NoError(t, err)

	updated, err := s.definitions.Update(ctx, def.ID, &models.WorkflowDefinitionUpdate{Name: models.Some("weekly-report")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "weekly-report", updated.Name)
	assert.Equal(t, def.Description, updated.Description)
	assert.Equal(t, def.Pipeline, updated.Pipeline)
	assert.Equal(t, def.Version, updated.Version)
	assert.Equal(t, def.IsActive, updated.IsActive)
	assert.Equal(t, def.Tags, updated.Tags)
	assert.Equal(t, def.Owner, updated.Owner)
	assert.True(t, def.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(def.UpdatedAt))
}

func TestRepository_EmptyPatchOnlyRefreshesTimestamp(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)

	updated, err := s.definitions.Update(ctx, def.ID, &models.WorkflowDefinitionUpdate{})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, updated.UpdatedAt.After(def.UpdatedAt))
	normalized := *updated
	normalized.UpdatedAt = def.UpdatedAt
	normalized.CreatedAt = def.CreatedAt
	assert.Equal(t, *def, normalized)
}

func TestRepository_UpdateClearsNullableField(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	create := &models.WorkflowDefinitionCreate{Name: "n", Pipeline: "p", Tags: strPtr("a")}
	def, err := s.definitions.Create(ctx, create.Record("o1"))
	require.NoError(t, err)

	updated, err := s.definitions.Update(ctx, def.ID, &models.WorkflowDefinitionUpdate{
		Tags:     models.Null[string](),
		IsActive: models.Some(false),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Tags)
	assert.False(t, updated.IsActive)
}

func TestRepository_UpdateMissing(t *testing.T) {
	s := setupStores(t)

	got, err := s.definitions.Update(context.Background(), "missing", &models.WorkflowDefinitionUpdate{Name: models.Some("x")})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_FailedCreateRollsBack(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	def, err := s.definitions.Create(ctx, newDefinition("o1", "n"))
	require.NoError(t, err)

	dup := newDefinition("o1", "dup")
	dup.ID = def.ID
	_, err = s.definitions.Create(ctx, dup)
	assert.Error(t, err)
	assert.Equal(t, int64(1), countRows(t, s.db, "ai_workflow_def"))

	got, err := s.definitions.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, "n", got.Name)
}

func TestRepository_CacheIsInvalidatedOnWrite(t *testing.T) {
	s := setupStores(t, withTestCache())
	ctx := context.Background()

	p, err := s.providers.Create(ctx, (&models.ModelProviderCreate{ProviderName: "acme"}).Record("o1"))
	require.NoError(t, err)

	first, err := s.providers.Get(ctx, p.ID)
	require.NoError(t, err)
	first.ProviderName = "mutated by caller"

	second, err := s.providers.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", second.ProviderName)

	_, err = s.providers.Update(ctx, p.ID, &models.ModelProviderUpdate{ProviderName: models.Some("acme-2")})
	require.NoError(t, err)

	third, err := s.providers.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme-2", third.ProviderName)

	_, err = s.providers.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	fourth, err := s.providers.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fourth.Deleted)

	require.NoError(t, s.providers.HardDelete(ctx, p.ID))
	gone, err := s.providers.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
