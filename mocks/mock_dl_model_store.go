package mocks

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/stretchr/testify/mock"
)

type MockDeepLearningModelStore struct {
	mock.Mock
}

func (m *MockDeepLearningModelStore) Create(ctx context.Context, model *models.DeepLearningModel) (*models.DeepLearningModel, error) {
	args := m.Called(ctx, model)
	return get[*models.DeepLearningModel](args, 0), args.Error(1)
}

func (m *MockDeepLearningModelStore) Get(ctx context.Context, id string) (*models.DeepLearningModel, error) {
	args := m.Called(ctx, id)
	return get[*models.DeepLearningModel](args, 0), args.Error(1)
}

func (m *MockDeepLearningModelStore) List(ctx context.Context, owner string, q repository.DeepLearningModelQuery) ([]*models.DeepLearningModel, error) {
	args := m.Called(ctx, owner, q)
	return get[[]*models.DeepLearningModel](args, 0), args.Error(1)
}

func (m *MockDeepLearningModelStore) Update(ctx context.Context, id string, patch *models.DeepLearningModelUpdate) (*models.DeepLearningModel, error) {
	args := m.Called(ctx, id, patch)
	return get[*models.DeepLearningModel](args, 0), args.Error(1)
}

func (m *MockDeepLearningModelStore) SoftDelete(ctx context.Context, id string) (*models.DeepLearningModel, error) {
	args := m.Called(ctx, id)
	return get[*models.DeepLearningModel](args, 0), args.Error(1)
}
