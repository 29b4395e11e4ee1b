package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/repository"
	"github.com/princinho/adboard/storage"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type AdFilter struct {
	Category string
	Search   string
}

type CreateAdInput struct {
	Title       string
	Description string
	Category    string
}

// BulkAdsInput carries per-file titles and descriptions by index and one
// category shared by the whole batch.
type BulkAdsInput struct {
	Titles       []string
	Descriptions []string
	Category     string
}

type UpdateAdInput struct {
	Title       *string
	Description *string
	Category    *string
}

// AdService creates and maintains ads. Once a file has been staged, every
// failure path discards it before the error is returned.
type AdService struct {
	ads        AdStore
	categories CategoryStore
	stager     storage.Stager
	log        *zap.Logger
}

func NewAdService(ads AdStore, categories CategoryStore, stager storage.Stager, log *zap.Logger) *AdService {
	return &AdService{ads: ads, categories: categories, stager: stager, log: log}
}

// StageFiles writes every upload to managed storage. If one fails, the files
// staged before it are discarded.
func (s *AdService) StageFiles(ctx context.Context, files []*multipart.FileHeader) ([]*models.StagedFile, error) {
	staged := make([]*models.StagedFile, 0, len(files))
	for _, fh := range files {
		sf, err := s.stager.Stage(ctx, fh)
		if err != nil {
			s.discard(ctx, staged...)
			return nil, fmt.Errorf("stage %s: %w", fh.Filename, err)
		}
		staged = append(staged, sf)
	}
	return staged, nil
}

func (s *AdService) ListAds(ctx context.Context, f AdFilter) ([]models.Ad, error) {
	filter := repository.AdFilter{Search: strings.TrimSpace(f.Search)}
	if raw := strings.TrimSpace(f.Category); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return nil, errInvalidCategory
		}
		filter.CategoryId = id
	}

	ads, err := s.ads.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *AdService) CreateAd(ctx context.Context, in CreateAdInput, file *models.StagedFile) (*models.Ad, error) {
	if file == nil {
		return nil, &ValidationError{Message: "No file uploaded"}
	}

	cat, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		s.discard(ctx, file)
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		s.discard(ctx, file)
		return nil, &ValidationError{Message: "Title is required"}
	}

	ad := newAd(title, strings.TrimSpace(in.Description), cat, file)
	if err := s.ads.Insert(ctx, ad); err != nil {
		s.discard(ctx, file)
		return nil, err
	}
	return ad, nil
}

// CreateAdsBulk inserts one ad per staged file, in order. A failure discards
// every file of the batch. Ads inserted before the failure stay in the database.
func (s *AdService) CreateAdsBulk(ctx context.Context, in BulkAdsInput, files []*models.StagedFile) ([]models.Ad, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Message: "No files uploaded"}
	}

	cat, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		s.discard(ctx, files...)
		return nil, err
	}

	pending := make([]*models.Ad, len(files))
	for i, file := range files {
		title := fmt.Sprintf("Ad %d", i+1)
		if i < len(in.Titles) && in.Titles[i] != "" {
			title = in.Titles[i]
		}
		title = strings.TrimSpace(title)
		if title == "" {
			s.discard(ctx, files...)
			return nil, &ValidationError{Message: fmt.Sprintf("Title is required (ad %d)", i+1)}
		}

		description := ""
		if i < len(in.Descriptions) {
			description = in.Descriptions[i]
		}
		pending[i] = newAd(title, strings.TrimSpace(description), cat, file)
	}

	created := make([]models.Ad, 0, len(pending))
	for i, ad := range pending {
		if err := s.ads.Insert(ctx, ad); err != nil {
			s.discard(ctx, files...)
			if len(created) > 0 {
				s.log.Warn("bulk upload failed after partial insert; earlier ads keep references to discarded files",
					zap.Int("failedIndex", i),
					zap.Strings("orphanedAdIds", adIDs(created)))
			}
			return nil, err
		}
		created = append(created, *ad)
	}
	return created, nil
}

func (s *AdService) GetAd(ctx context.Context, id string) (*models.Ad, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, errAdNotFound
	}
	ad, err := s.ads.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errAdNotFound
		}
		return nil, err
	}
	if err := s.hydrateOne(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// UpdateAd changes only the supplied fields. The image is never touched.
func (s *AdService) UpdateAd(ctx context.Context, id string, in UpdateAdInput) (*models.Ad, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, errAdNotFound
	}

	var u repository.AdUpdate
	if in.Category != nil {
		cat, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		u.CategoryId = &cat.Id
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, &ValidationError{Message: "Title is required"}
		}
		u.Title = &title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		u.Description = &description
	}

	ad, err := s.ads.Update(ctx, oid, u)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errAdNotFound
		}
		return nil, err
	}
	if err := s.hydrateOne(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// DeleteAd removes the backing file, tolerating its absence, then the record.
func (s *AdService) DeleteAd(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return errAdNotFound
	}
	ad, err := s.ads.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errAdNotFound
		}
		return err
	}

	if err := s.stager.Discard(ctx, ad.ImagePath); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}

	if err := s.ads.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errAdNotFound
		}
		return err
	}
	return nil
}

func (s *AdService) resolveCategory(ctx context.Context, raw string) (*models.Category, error) {
	id, ok := parseID(strings.TrimSpace(raw))
	if !ok {
		return nil, errInvalidCategory
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCategory
		}
		return nil, err
	}
	return cat, nil
}

// discard is the rollback path. It runs even if the request was cancelled.
func (s *AdService) discard(ctx context.Context, files ...*models.StagedFile) {
	ctx = context.WithoutCancel(ctx)
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := s.stager.Discard(ctx, f.Path); err != nil {
			s.log.Error("failed to discard staged file", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		s.log.Debug("discarded staged file", zap.String("path", f.Path))
	}
}

func (s *AdService) hydrateOne(ctx context.Context, ad *models.Ad) error {
	ads := []models.Ad{*ad}
	if err := s.hydrate(ctx, ads); err != nil {
		return err
	}
	ad.Category = ads[0].Category
	return nil
}

// hydrate resolves each ad's category reference to {id, name}. A dangling
// reference is left nil.
func (s *AdService) hydrate(ctx context.Context, ads []models.Ad) error {
	if len(ads) == 0 {
		return nil
	}
	seen := make(map[bson.ObjectID]bool)
	ids := make([]bson.ObjectID, 0)
	for _, ad := range ads {
		if !seen[ad.CategoryId] {
			seen[ad.CategoryId] = true
			ids = append(ids, ad.CategoryId)
		}
	}

	cats, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[bson.ObjectID]string, len(cats))
	for _, c := range cats {
		names[c.Id] = c.Name
	}
	for i := range ads {
		if name, ok := names[ads[i].CategoryId]; ok {
			ads[i].Category = &models.CategoryRef{Id: ads[i].CategoryId, Name: name}
		}
	}
	return nil
}

func newAd(title, description string, cat *models.Category, file *models.StagedFile) *models.Ad {
	return &models.Ad{
		Title:            title,
		Description:      description,
		CategoryId:       cat.Id,
		Category:         &models.CategoryRef{Id: cat.Id, Name: cat.Name},
		ImagePath:        file.Path,
		OriginalFileName: file.OriginalName,
		MimeType:         file.MimeType,
		FileSize:         file.Size,
	}
}

func adIDs(ads []models.Ad) []string {
	out := make([]string, len(ads))
	for i, ad := range ads {
		out[i] = ad.Id.Hex()
	}
	return out
}
