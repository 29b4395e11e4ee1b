package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/princinho/adboard/database"
	"github.com/princinho/adboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(store *database.Store) *CategoryRepository {
	return &CategoryRepository{col: store.Collection(database.CategoriesCollection)}
}

// List returns every category sorted by name ascending.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	return r.find(ctx, bson.M{})
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *CategoryRepository) find(ctx context.Context, filter bson.M) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.Category, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return items, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	var cat models.Category
	if err := r.col.FindOne(ctx, filter).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &cat, nil
}

// Insert stores cat and fills in its id and timestamps.
func (r *CategoryRepository) Insert(ctx context.Context, cat *models.Category) error {
	now := time.Now().UTC()
	cat.Id = bson.NewObjectID()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, cat); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// InsertMany stores cats in one round trip, filling in ids and timestamps.
func (r *CategoryRepository) InsertMany(ctx context.Context, cats []*models.Category) error {
	if len(cats) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, cat := range cats {
		cat.Id = bson.NewObjectID()
		cat.CreatedAt = now
		cat.UpdatedAt = now
	}
	if _, err := r.col.InsertMany(ctx, cats); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

// Update sets the name and, when non-nil, the description. It returns the updated document.
func (r *CategoryRepository) Update(ctx context.Context, id bson.ObjectID, name string, description *string) (*models.Category, error) {
	set := bson.M{"name": name, "updatedAt": time.Now().UTC()}
	if description != nil {
		set["description"] = *description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cat models.Category
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&cat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &cat, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear categories: %w", err)
	}
	return res.DeletedCount, nil
}
