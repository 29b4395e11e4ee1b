package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MockCategoryStore struct{ mock.Mock }

func (m *MockCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *MockCategoryStore) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *MockCategoryStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryStore) Insert(ctx context.Context, cat *models.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}
func (m *MockCategoryStore) Update(ctx context.Context, id bson.ObjectID, name string, description *string) (*models.Category, error) {
	args := m.Called(ctx, id, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryStore) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdStore struct{ mock.Mock }

func (m *MockAdStore) List(ctx context.Context, f repository.AdFilter) ([]models.Ad, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ad), args.Error(1)
}
func (m *MockAdStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ad), args.Error(1)
}
func (m *MockAdStore) Insert(ctx context.Context, ad *models.Ad) error {
	args := m.Called(ctx, ad)
	if args.Error(0) == nil {
		ad.Id = bson.NewObjectID()
	}
	return args.Error(0)
}
func (m *MockAdStore) Update(ctx context.Context, id bson.ObjectID, u repository.AdUpdate) (*models.Ad, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ad), args.Error(1)
}
func (m *MockAdStore) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdStore) CountByCategory(ctx context.Context, categoryId bson.ObjectID) (int64, error) {
	args := m.Called(ctx, categoryId)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdStore) CountsByCategory(ctx context.Context) (map[bson.ObjectID]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bson.ObjectID]int64), args.Error(1)
}

// stagedFile writes a file into dir as if the stager had accepted an upload.
func stagedFile(t *testing.T, dir, name string) *models.StagedFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o644))
	return &models.StagedFile{Path: path, OriginalName: name, MimeType: "image/png", Size: 8}
}
