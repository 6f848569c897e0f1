package mocks

import (
	"context"

	"vendorportal/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) CompanyDetails(ctx context.Context, vendorID string) (*model.CompanyDetails, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyDetails), args.Error(1)
}

func (m *MockAPI) DocumentPresets(ctx context.Context) ([]model.DocumentPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentPreset), args.Error(1)
}

func (m *MockAPI) CompleteRegistration(ctx context.Context, vendorID string, step string, data any) error {
	args := m.Called(ctx, vendorID, step, data)
	return args.Error(0)
}
