package mocks

import (
	"context"

	"github.com/go-streamline/aiworkflow/database"
	"github.com/stretchr/testify/mock"
)

type MockSchemaManager struct {
	mock.Mock
}

func (m *MockSchemaManager) CreateTables(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return get[[]string](args, 0), args.Error(1)
}

func (m *MockSchemaManager) DropTables(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return get[[]string](args, 0), args.Error(1)
}

func (m *MockSchemaManager) DescribeTables(ctx context.Context) ([]database.TableInfo, error) {
	args := m.Called(ctx)
	return get[[]database.TableInfo](args, 0), args.Error(1)
}

func (m *MockSchemaManager) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
