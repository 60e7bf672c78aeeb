package repository

import (
	"context"
	"time"

	"github.com/go-streamline/aiworkflow/models"
	"gorm.io/gorm"
)

var workflowDefinitionSorts = withColumnKeys(map[string]string{
	"created_at": "created_at_time",
	"updated_at": "updated_at_time",
	"name":       "name_str",
	"version":    "version_str",
})

// WorkflowDefinitionQuery filters definitions. Nil and empty fields are ignored.
type WorkflowDefinitionQuery struct {
	ListOptions
	IsActive      *bool
	Name          *string
	Tags          *string
	Version       *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

type WorkflowDefinitionStore struct {
	*Repository[models.WorkflowDefinition, *models.WorkflowDefinition]
}

func NewWorkflowDefinitionStore(db *gorm.DB, logFactory LoggerFactory, opts ...Option) (*WorkflowDefinitionStore, error) {
	repo, err := NewRepository[models.WorkflowDefinition](db, logFactory, opts...)
	if err != nil {
		return nil, err
	}
	return &WorkflowDefinitionStore{Repository: repo}, nil
}

// Find builds the filtered, ordered and paginated listing of owner's live definitions.
func (s *WorkflowDefinitionStore) Find(owner string, q WorkflowDefinitionQuery) *ResultSet[models.WorkflowDefinition] {
	query := s.scoped(owner)
	query = whereEquals(query, "is_active_flag", q.IsActive)
	query = whereContains(query, "name_str", q.Name)
	query = whereContains(query, "tags_str", q.Tags)
	query = whereContains(query, "version_str", q.Version)
	query = whereBetween(query, "created_at_time", q.CreatedAfter, q.CreatedBefore)
	query = whereBetween(query, "updated_at_time", q.UpdatedAfter, q.UpdatedBefore)
	return newResultSet[models.WorkflowDefinition](paginate(query, q.ListOptions, workflowDefinitionSorts))
}

func (s *WorkflowDefinitionStore) List(ctx context.Context, owner string, q WorkflowDefinitionQuery) ([]*models.WorkflowDefinition, error) {
	return s.Find(owner, q).All(ctx)
}

// ListActive returns every live, active definition of owner, newest update first.
func (s *WorkflowDefinitionStore) ListActive(ctx context.Context, owner string) ([]*models.WorkflowDefinition, error) {
	query := s.scoped(owner).Where("is_active_flag = ?", true)
	return newResultSet[models.WorkflowDefinition](newestFirst(query)).All(ctx)
}

func (s *WorkflowDefinitionStore) Update(ctx context.Context, id string, patch *models.WorkflowDefinitionUpdate) (*models.WorkflowDefinition, error) {
	return s.Repository.Update(ctx, id, patch)
}
