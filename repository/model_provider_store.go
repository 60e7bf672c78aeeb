package repository

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"gorm.io/gorm"
)

var modelProviderSorts = withColumnKeys(map[string]string{
	"created_at":    "created_at_time",
	"updated_at":    "updated_at_time",
	"provider_name": "provider_name_str",
	"provider_type": "provider_type_str",
})

type ModelProviderQuery struct {
	ListOptions
	ProviderName *string
	ProviderType *string
}

type ModelProviderStore struct {
	*Repository[models.ModelProvider, *models.ModelProvider]
}

func NewModelProviderStore(db *gorm.DB, logFactory LoggerFactory, opts ...Option) (*ModelProviderStore, error) {
	repo, err := NewRepository[models.ModelProvider](db, logFactory, opts...)
	if err != nil {
		return nil, err
	}
	return &ModelProviderStore{Repository: repo}, nil
}

func (s *ModelProviderStore) Find(owner string, q ModelProviderQuery) *ResultSet[models.ModelProvider] {
	query := s.scoped(owner)
	query = whereEqualsString(query, "provider_name_str", q.ProviderName)
	query = whereEqualsString(query, "provider_type_str", q.ProviderType)
	return newResultSet[models.ModelProvider](paginate(query, q.ListOptions, modelProviderSorts))
}

func (s *ModelProviderStore) List(ctx context.Context, owner string, q ModelProviderQuery) ([]*models.ModelProvider, error) {
	return s.Find(owner, q).All(ctx)
}

// Update does not rename the provider on models already registered against it.
func (s *ModelProviderStore) Update(ctx context.Context, id string, patch *models.ModelProviderUpdate) (*models.ModelProvider, error) {
	return s.Repository.Update(ctx, id, patch)
}
