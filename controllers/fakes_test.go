package controllers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memCategories struct {
	mu    sync.Mutex
	items map[bson.ObjectID]models.Category
}

func newMemCategories() *memCategories {
	return &memCategories{items: make(map[bson.ObjectID]models.Category)}
}

func (m *memCategories) List(_ context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Category, error) {
	all, _ := m.List(ctx)
	want := make(map[bson.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.Category, 0)
	for _, c := range all {
		if want[c.Id] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) FindByID(_ context.Context, id bson.ObjectID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *memCategories) FindByName(_ context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCategories) Insert(_ context.Context, cat *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat.Id = bson.NewObjectID()
	cat.CreatedAt = time.Now().UTC()
	cat.UpdatedAt = cat.CreatedAt
	m.items[cat.Id] = *cat
	return nil
}

func (m *memCategories) Update(_ context.Context, id bson.ObjectID, name string, description *string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = name
	if description != nil {
		c.Description = *description
	}
	m.items[id] = c
	return &c, nil
}

func (m *memCategories) Delete(_ context.Context, id bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// memAds fails the n-th Insert (1-based) when failInsertAt is set.
type memAds struct {
	mu           sync.Mutex
	items        []models.Ad
	inserts      int
	failInsertAt int
}

func (m *memAds) List(_ context.Context, f repository.AdFilter) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	search := strings.ToLower(f.Search)
	out := make([]models.Ad, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		ad := m.items[i]
		if !f.CategoryId.IsZero() && ad.CategoryId != f.CategoryId {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(ad.Title), search) &&
			!strings.Contains(strings.ToLower(ad.Description), search) {
			continue
		}
		out = append(out, ad)
	}
	return out, nil
}

func (m *memAds) FindByID(_ context.Context, id bson.ObjectID) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ad := range m.items {
		if ad.Id == id {
			return &ad, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAds) Insert(_ context.Context, ad *models.Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.inserts == m.failInsertAt {
		return errors.New("forced insert failure")
	}
	ad.Id = bson.NewObjectID()
	ad.CreatedAt = time.Now().UTC()
	ad.UpdatedAt = ad.CreatedAt
	stored := *ad
	stored.Category = nil
	m.items = append(m.items, stored)
	return nil
}

func (m *memAds) Update(_ context.Context, id bson.ObjectID, u repository.AdUpdate) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].Id != id {
			continue
		}
		if u.Title != nil {
			m.items[i].Title = *u.Title
		}
		if u.Description != nil {
			m.items[i].Description = *u.Description
		}
		if u.CategoryId != nil {
			m.items[i].CategoryId = *u.CategoryId
		}
		ad := m.items[i]
		return &ad, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memAds) Delete(_ context.Context, id bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].Id == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memAds) CountByCategory(_ context.Context, categoryId bson.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, ad := range m.items {
		if ad.CategoryId == categoryId {
			n++
		}
	}
	return n, nil
}

func (m *memAds) CountsByCategory(_ context.Context) (map[bson.ObjectID]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[bson.ObjectID]int64)
	for _, ad := range m.items {
		counts[ad.CategoryId]++
	}
	return counts, nil
}
