package mocks

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/stretchr/testify/mock"
)

type MockWorkflowDefinitionStore struct {
	mock.Mock
}

func (m *MockWorkflowDefinitionStore) Create(ctx context.Context, def *models.WorkflowDefinition) (*models.WorkflowDefinition, error) {
	args := m.Called(ctx, def)
	return get[*models.WorkflowDefinition](args, 0), args.Error(1)
}

func (m *MockWorkflowDefinitionStore) Get(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	args := m.Called(ctx, id)
	return get[*models.WorkflowDefinition](args, 0), args.Error(1)
}

func (m *MockWorkflowDefinitionStore) List(ctx context.Context, owner string, q repository.WorkflowDefinitionQuery) ([]*models.WorkflowDefinition, error) {
	args := m.Called(ctx, owner, q)
	return get[[]*models.WorkflowDefinition](args, 0), args.Error(1)
}

func (m *MockWorkflowDefinitionStore) ListActive(ctx context.Context, owner string) ([]*models.WorkflowDefinition, error) {
	args := m.Called(ctx, owner)
	return get[[]*models.WorkflowDefinition](args, 0), args.Error(1)
}

func (m *MockWorkflowDefinitionStore) Update(ctx context.Context, id string, patch *models.WorkflowDefinitionUpdate) (*models.WorkflowDefinition, error) {
	args := m.Called(ctx, id, patch)
	return get[*models.WorkflowDefinition](args, 0), args.Error(1)
}

func (m *MockWorkflowDefinitionStore) SoftDelete(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	args := m.Called(ctx, id)
	return get[*models.WorkflowDefinition](args, 0), args.Error(1)
}
