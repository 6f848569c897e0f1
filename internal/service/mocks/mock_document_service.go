package mocks

import (
	"context"
	"io"

	"vendorportal/internal/model"
	"vendorportal/internal/report"
	"vendorportal/internal/service"
	"vendorportal/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Overview(ctx context.Context, vendorID string) (*service.Overview, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Overview), args.Error(1)
}

func (m *MockDocumentService) Missing(ctx context.Context, vendorID string) ([]model.DocumentPreset, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentPreset), args.Error(1)
}

func (m *MockDocumentService) Presets(ctx context.Context) ([]model.DocumentPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentPreset), args.Error(1)
}

func (m *MockDocumentService) Replace(ctx context.Context, vendorID string, req service.ReplaceRequest) (*model.Document, error) {
	args := m.Called(ctx, vendorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Uploads(ctx context.Context, vendorID string, limit, offset int) (*service.UploadListResult, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadListResult), args.Error(1)
}

func (m *MockDocumentService) UploadFile(ctx context.Context, vendorID, id string) (io.ReadCloser, *model.UploadRecord, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.UploadRecord), args.Error(2)
}

func (m *MockDocumentService) PreviewURL(ctx context.Context, vendorID, id string) (string, error) {
	args := m.Called(ctx, vendorID, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) DocumentFile(ctx context.Context, vendorID, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, vendorID, fileName)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockDocumentService) Report(ctx context.Context, vendorID string, format report.Format, w io.Writer) error {
	args := m.Called(ctx, vendorID, format, w)
	if f, ok := args.Get(0).(func(io.Writer) error); ok {
		return f(w)
	}
	return args.Error(0)
}
