package mocks

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/stretchr/testify/mock"
)

type MockModelProviderStore struct {
	mock.Mock
}

func (m *MockModelProviderStore) Create(ctx context.Context, provider *models.ModelProvider) (*models.ModelProvider, error) {
	args := m.Called(ctx, provider)
	return get[*models.ModelProvider](args, 0), args.Error(1)
}

func (m *MockModelProviderStore) Get(ctx context.Context, id string) (*models.ModelProvider, error) {
	args := m.Called(ctx, id)
	return get[*models.ModelProvider](args, 0), args.Error(1)
}

func (m *MockModelProviderStore) List(ctx context.Context, owner string, q repository.ModelProviderQuery) ([]*models.ModelProvider, error) {
	args := m.Called(ctx, owner, q)
	return get[[]*models.ModelProvider](args, 0), args.Error(1)
}

func (m *MockModelProviderStore) Update(ctx context.Context, id string, patch *models.ModelProviderUpdate) (*models.ModelProvider, error) {
	args := m.Called(ctx, id, patch)
	return get[*models.ModelProvider](args, 0), args.Error(1)
}

func (m *MockModelProviderStore) SoftDelete(ctx context.Context, id string) (*models.ModelProvider, error) {
	args := m.Called(ctx, id)
	return get[*models.ModelProvider](args, 0), args.Error(1)
}
