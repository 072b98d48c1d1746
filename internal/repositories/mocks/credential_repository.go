package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CredentialRepository struct {
	mock.Mock
}

func (m *CredentialRepository) Save(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *CredentialRepository) Load(ctx context.Context) (*models.Session, error) {
	args := m.Called(ctx)
	if session := args.Get(0); session != nil {
		return session.(*models.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CredentialRepository) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
