package services

import (
	"context"
	"errors"
	"strings"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/repository"
	"github.com/princinho/adboard/utils"
	"go.uber.org/zap"
)

type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput: a nil Description leaves the stored one untouched.
type UpdateCategoryInput struct {
	Name        string
	Description *string
}

type CategoryService struct {
	categories CategoryStore
	ads        AdStore
	log        *zap.Logger
}

func NewCategoryService(categories CategoryStore, ads AdStore, log *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, ads: ads, log: log}
}

// ListCategories returns all categories by name ascending, each with its ad count.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.ads.CountsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CategoryWithCount, len(cats))
	for i, c := range cats {
		out[i] = models.CategoryWithCount{Category: c, AdCount: counts[c.Id]}
	}
	return out, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Message: "Category name is required"}
	}

	_, err := s.categories.FindByName(ctx, name)
	switch {
	case err == nil:
		return nil, errCategoryExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	cat := &models.Category{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := s.categories.Insert(ctx, cat); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, errCategoryExists
		}
		return nil, err
	}
	s.log.Info("category created", zap.String("id", cat.Id.Hex()), zap.String("name", cat.Name))
	return cat, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, errCategoryNotFound
	}
	cat, err := s.categories.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, errCategoryNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Message: "Category name is required"}
	}
	var description *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		description = &d
	}

	cat, err := s.categories.Update(ctx, oid, name, description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errCategoryNotFound
		}
		if utils.IsDuplicateKey(err) {
			return nil, errCategoryExists
		}
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses while any ad references the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return errCategoryNotFound
	}

	n, err := s.ads.CountByCategory(ctx, oid)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Message: "Cannot delete category with existing ads. Please move or delete all ads first."}
	}

	if err := s.categories.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errCategoryNotFound
		}
		return err
	}
	s.log.Info("category deleted", zap.String("id", id))
	return nil
}
