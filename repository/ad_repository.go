package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/princinho/adboard/database"
	"github.com/princinho/adboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// AdFilter narrows List. A zero CategoryId matches every category.
type AdFilter struct {
	CategoryId bson.ObjectID
	Search     string
}

// AdUpdate holds the optional fields of a partial update.
type AdUpdate struct {
	Title       *string
	Description *string
	CategoryId  *bson.ObjectID
}

type AdRepository struct {
	col *mongo.Collection
}

func NewAdRepository(store *database.Store) *AdRepository {
	return &AdRepository{col: store.Collection(database.AdsCollection)}
}

// List returns matching ads newest first. Search is a case-insensitive
// substring match on title or description.
func (r *AdRepository) List(ctx context.Context, f AdFilter) ([]models.Ad, error) {
	filter := bson.M{}
	if !f.CategoryId.IsZero() {
		filter["category"] = f.CategoryId
	}
	if f.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find ads: %w", err)
	}
	defer cursor.Close(ctx)

	ads := make([]models.Ad, 0)
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, fmt.Errorf("decode ads: %w", err)
	}
	return ads, nil
}

func (r *AdRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Ad, error) {
	var ad models.Ad
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find ad: %w", err)
	}
	return &ad, nil
}

// Insert stores ad and fills in its id and timestamps.
func (r *AdRepository) Insert(ctx context.Context, ad *models.Ad) error {
	now := time.Now().UTC()
	ad.Id = bson.NewObjectID()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, ad); err != nil {
		return fmt.Errorf("insert ad: %w", err)
	}
	return nil
}

func (r *AdRepository) Update(ctx context.Context, id bson.ObjectID, u AdUpdate) (*models.Ad, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.CategoryId != nil {
		set["category"] = *u.CategoryId
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ad models.Ad
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&ad)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update ad: %w", err)
	}
	return &ad, nil
}

func (r *AdRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdRepository) CountByCategory(ctx context.Context, categoryId bson.ObjectID) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"category": categoryId})
	if err != nil {
		return 0, fmt.Errorf("count ads: %w", err)
	}
	return n, nil
}

// CountsByCategory returns the number of ads per referenced category id.
func (r *AdRepository) CountsByCategory(ctx context.Context) (map[bson.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ad counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Id    bson.ObjectID `bson:"_id"`
		Count int64         `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode ad counts: %w", err)
	}

	counts := make(map[bson.ObjectID]int64, len(rows))
	for _, row := range rows {
		counts[row.Id] = row.Count
	}
	return counts, nil
}
