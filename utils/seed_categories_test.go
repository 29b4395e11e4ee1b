package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/princinho/adboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MockCategorySeeder struct {
	mock.Mock
}

func (m *MockCategorySeeder) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategorySeeder) InsertMany(ctx context.Context, categories []*models.Category) error {
	args := m.Called(ctx, categories)
	if args.Error(0) == nil {
		for _, c := range categories {
			c.Id = bson.NewObjectID()
		}
	}
	return args.Error(0)
}

func TestSeedCategories(t *testing.T) {
	ctx := context.Background()
	store := new(MockCategorySeeder)
	store.On("DeleteAll", ctx).Return(int64(3), nil).Once()
	store.On("InsertMany", ctx, mock.MatchedBy(func(cats []*models.Category) bool {
		return len(cats) == 8
	})).Return(nil).Once()

	var out bytes.Buffer
	cats, err := SeedCategories(ctx, store, &out)
	require.NoError(t, err)
	require.Len(t, cats, 8)
	for _, c := range cats {
		assert.False(t, c.Id.IsZero())
	}

	assert.Contains(t, out.String(), "- Electronics: Electronic devices and gadgets\n")
	assert.Contains(t, out.String(), "- Home & Garden: Home decor and gardening items\n")
	assert.Contains(t, out.String(), "- Sports: Sports equipment and activities\n")
	// defaults must stay untouched between runs
	assert.True(t, DefaultCategories[0].Id.IsZero())
	store.AssertExpectations(t)
}

func TestSeedCategoriesStopsWhenClearFails(t *testing.T) {
	ctx := context.Background()
	store := new(MockCategorySeeder)
	store.On("DeleteAll", ctx).Return(int64(0), errors.New("boom")).Once()

	_, err := SeedCategories(ctx, store, &bytes.Buffer{})
	require.Error(t, err)
	store.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestSeedCategoriesInsertFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockCategorySeeder)
	store.On("DeleteAll", ctx).Return(int64(0), nil).Once()
	store.On("InsertMany", ctx, mock.Anything).Return(errors.New("boom")).Once()

	var out bytes.Buffer
	_, err := SeedCategories(ctx, store, &out)
	require.ErrorContains(t, err, "insert categories")
	assert.NotContains(t, out.String(), "- Electronics")
}
