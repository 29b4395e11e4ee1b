package utils

import (
	"context"
	"fmt"
	"io"

	"github.com/princinho/adboard/models"
)

// CategorySeeder is the part of the category store that seeding needs.
type CategorySeeder interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, categories []*models.Category) error
}

var DefaultCategories = []models.Category{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Automobiles", Description: "Cars, bikes, and automotive parts"},
	{Name: "Real Estate", Description: "Property and real estate listings"},
	{Name: "Jobs", Description: "Job openings and career opportunities"},
	{Name: "Services", Description: "Professional and personal services"},
	{Name: "Fashion", Description: "Clothing and fashion accessories"},
	{Name: "Home & Garden", Description: "Home decor and gardening items"},
	{Name: "Sports", Description: "Sports equipment and activities"},
}

// SeedCategories replaces every category with DefaultCategories and prints
// "- name: description" for each one created.
func SeedCategories(ctx context.Context, store CategorySeeder, out io.Writer) ([]*models.Category, error) {
	removed, err := store.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear categories: %w", err)
	}
	fmt.Fprintf(out, "Cleared %d existing categories\n", removed)

	cats := make([]*models.Category, len(DefaultCategories))
	for i := range DefaultCategories {
		c := DefaultCategories[i]
		cats[i] = &c
	}
	if err := store.InsertMany(ctx, cats); err != nil {
		return nil, fmt.Errorf("insert categories: %w", err)
	}

	fmt.Fprintf(out, "Created %d categories:\n", len(cats))
	for _, c := range cats {
		fmt.Fprintf(out, "- %s: %s\n", c.Name, c.Description)
	}
	return cats, nil
}
