package mocks

import (
	"context"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/stretchr/testify/mock"
)

type MockWorkflowJobStore struct {
	mock.Mock
}

func (m *MockWorkflowJobStore) Create(ctx context.Context, job *models.WorkflowJob) (*models.WorkflowJob, error) {
	args := m.Called(ctx, job)
	return get[*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) Get(ctx context.Context, id string) (*models.WorkflowJob, error) {
	args := m.Called(ctx, id)
	return get[*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) List(ctx context.Context, owner string, q repository.WorkflowJobQuery) ([]*models.WorkflowJob, error) {
	args := m.Called(ctx, owner, q)
	return get[[]*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) ListByStatus(ctx context.Context, owner string, status string) ([]*models.WorkflowJob, error) {
	args := m.Called(ctx, owner, status)
	return get[[]*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) ListByDefinition(ctx context.Context, owner string, definitionID string) ([]*models.WorkflowJob, error) {
	args := m.Called(ctx, owner, definitionID)
	return get[[]*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) Update(ctx context.Context, id string, patch *models.WorkflowJobUpdate) (*models.WorkflowJob, error) {
	args := m.Called(ctx, id, patch)
	return get[*models.WorkflowJob](args, 0), args.Error(1)
}

func (m *MockWorkflowJobStore) SoftDelete(ctx context.Context, id string) (*models.WorkflowJob, error) {
	args := m.Called(ctx, id)
	return get[*models.WorkflowJob](args, 0), args.Error(1)
}
