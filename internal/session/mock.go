package session

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userId string) (string, error) {
	args := m.Called(ctx, userId)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Validate(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSessionStore) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
