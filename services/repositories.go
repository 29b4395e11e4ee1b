package services

import (
	"context"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Category, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Insert(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, id bson.ObjectID, name string, description *string) (*models.Category, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type AdStore interface {
	List(ctx context.Context, f repository.AdFilter) ([]models.Ad, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Ad, error)
	Insert(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, id bson.ObjectID, u repository.AdUpdate) (*models.Ad, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	CountByCategory(ctx context.Context, categoryId bson.ObjectID) (int64, error)
	CountsByCategory(ctx context.Context) (map[bson.ObjectID]int64, error)
}

var (
	_ CategoryStore = (*repository.CategoryRepository)(nil)
	_ AdStore       = (*repository.AdRepository)(nil)
)
