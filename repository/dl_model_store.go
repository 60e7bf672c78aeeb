package repository

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"gorm.io/gorm"
)

var deepLearningModelSorts = withColumnKeys(map[string]string{
	"created_at":    "created_at_time",
	"updated_at":    "updated_at_time",
	"model_name":    "model_name_str",
	"model_type":    "model_type_str",
	"provider_name": "provider_name_str",
})

type DeepLearningModelQuery struct {
	ListOptions
	ModelName    *string
	ModelType    *string
	ProviderName *string
}

type DeepLearningModelStore struct {
	*Repository[models.DeepLearningModel, *models.DeepLearningModel]
}

func NewDeepLearningModelStore(db *gorm.DB, logFactory LoggerFactory, opts ...Option) (*DeepLearningModelStore, error) {
	repo, err := NewRepository[models.DeepLearningModel](db, logFactory, opts...)
	if err != nil {
		return nil, err
	}
	return &DeepLearningModelStore{Repository: repo}, nil
}

// Create checks the provider exists and copies its name onto the model,
// all inside the insert transaction.
func (s *DeepLearningModelStore) Create(ctx context.Context, model *models.DeepLearningModel) (*models.DeepLearningModel, error) {
	err := s.transaction(ctx, "create", func(tx *gorm.DB) error {
		provider, err := lookupByID[models.ModelProvider](tx, model.ProviderID)
		if err != nil {
			return err
		}
		if provider == nil {
			return newReferenceNotFoundError(ErrModelProviderNotFound, model.ProviderID)
		}
		model.ProviderName = provider.ProviderName
		return s.insert(tx, model)
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (s *DeepLearningModelStore) Find(owner string, q DeepLearningModelQuery) *ResultSet[models.DeepLearningModel] {
	query := s.scoped(owner)
	query = whereEqualsString(query, "model_name_str", q.ModelName)
	query = whereEqualsString(query, "model_type_str", q.ModelType)
	query = whereEqualsString(query, "provider_name_str", q.ProviderName)
	return newResultSet[models.DeepLearningModel](paginate(query, q.ListOptions, deepLearningModelSorts))
}

func (s *DeepLearningModelStore) List(ctx context.Context, owner string, q DeepLearningModelQuery) ([]*models.DeepLearningModel, error) {
	return s.Find(owner, q).All(ctx)
}

func (s *DeepLearningModelStore) Update(ctx context.Context, id string, patch *models.DeepLearningModelUpdate) (*models.DeepLearningModel, error) {
	return s.Repository.Update(ctx, id, patch)
}
