package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alexanderramin/effortplan/internal/repository"
)

// ProjectStore is a mock for repository.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

var _ repository.ProjectStore = (*ProjectStore)(nil)

func (m *ProjectStore) Get(ctx context.Context, code string) (*repository.ProjectRecord, error) {
	args := m.Called(ctx, code)
	if rec, ok := args.Get(0).(*repository.ProjectRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Put(ctx context.Context, rec *repository.ProjectRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *ProjectStore) List(ctx context.Context) ([]*repository.ProjectRecord, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*repository.ProjectRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
