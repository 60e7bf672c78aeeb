package repository

import (
	"context"
	"time"

	"github.com/go-streamline/aiworkflow/models"
	"gorm.io/gorm"
)

var workflowJobSorts = withColumnKeys(map[string]string{
	"created_at":             "created_at_time",
	"updated_at":             "updated_at_time",
	"started_at":             "started_at_time",
	"completed_at":           "completed_at_time",
	"execution_time_seconds": "execution_time_seconds",
})

type WorkflowJobQuery struct {
	ListOptions
	DefinitionID    *string
	Status          *string
	JobName         *string
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	UpdatedAfter    *time.Time
	UpdatedBefore   *time.Time
	StartedAfter    *time.Time
	StartedBefore   *time.Time
	CompletedAfter  *time.Time
	CompletedBefore *time.Time
}

type WorkflowJobStore struct {
	*Repository[models.WorkflowJob, *models.WorkflowJob]
}

func NewWorkflowJobStore(db *gorm.DB, logFactory LoggerFactory, opts ...Option) (*WorkflowJobStore, error) {
	repo, err := NewRepository[models.WorkflowJob](db, logFactory, opts...)
	if err != nil {
		return nil, err
	}
	return &WorkflowJobStore{Repository: repo}, nil
}

// Create inserts job after checking, in the same transaction, that its
// definition exists. A soft-deleted definition still counts.
func (s *WorkflowJobStore) Create(ctx context.Context, job *models.WorkflowJob) (*models.WorkflowJob, error) {
	err := s.transaction(ctx, "create", func(tx *gorm.DB) error {
		def, err := lookupByID[models.WorkflowDefinition](tx, job.DefinitionID)
		if err != nil {
			return err
		}
		if def == nil {
			return newReferenceNotFoundError(ErrWorkflowDefinitionNotFound, job.DefinitionID)
		}
		return s.insert(tx, job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *WorkflowJobStore) Find(owner string, q WorkflowJobQuery) *ResultSet[models.WorkflowJob] {
	query := s.scoped(owner)
	query = whereEqualsString(query, "ai_workflow_def_id", q.DefinitionID)
	query = whereEqualsString(query, "status_str", q.Status)
	query = whereContains(query, "job_name_str", q.JobName)
	query = whereBetween(query, "created_at_time", q.CreatedAfter, q.CreatedBefore)
	query = whereBetween(query, "updated_at_time", q.UpdatedAfter, q.UpdatedBefore)
	query = whereBetween(query, "started_at_time", q.StartedAfter, q.StartedBefore)
	query = whereBetween(query, "completed_at_time", q.CompletedAfter, q.CompletedBefore)
	return newResultSet[models.WorkflowJob](paginate(query, q.ListOptions, workflowJobSorts))
}

func (s *WorkflowJobStore) List(ctx context.Context, owner string, q WorkflowJobQuery) ([]*models.WorkflowJob, error) {
	return s.Find(owner, q).All(ctx)
}

// ListByStatus returns every live job of owner in status, newest update first.
func (s *WorkflowJobStore) ListByStatus(ctx context.Context, owner string, status string) ([]*models.WorkflowJob, error) {
	query := s.scoped(owner).Where("status_str = ?", status)
	return newResultSet[models.WorkflowJob](newestFirst(query)).All(ctx)
}

// ListByDefinition returns every live job of owner for one definition, newest update first.
func (s *WorkflowJobStore) ListByDefinition(ctx context.Context, owner string, definitionID string) ([]*models.WorkflowJob, error) {
	query := s.scoped(owner).Where("ai_workflow_def_id = ?", definitionID)
	return newResultSet[models.WorkflowJob](newestFirst(query)).All(ctx)
}

func (s *WorkflowJobStore) Update(ctx context.Context, id string, patch *models.WorkflowJobUpdate) (*models.WorkflowJob, error) {
	return s.Repository.Update(ctx, id, patch)
}
