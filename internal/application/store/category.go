package store

import (
	"context"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// CategoryStore caches the category list
type CategoryStore struct {
	api       CategoryAPI
	container *Container[cases.CategoryIndex]
}

// NewCategoryStore creates an empty category cache
func NewCategoryStore(api CategoryAPI, opts ...Option) *CategoryStore {
	return &CategoryStore{
		api:       api,
		container: NewContainer(CategoryName, cases.NewCategoryIndex(nil), opts...),
	}
}

// Container exposes the underlying container
func (s *CategoryStore) Container() *Container[cases.CategoryIndex] {
	return s.container
}

// Snapshot returns the current state
func (s *CategoryStore) Snapshot() State[cases.CategoryIndex] {
	return s.container.Snapshot()
}

// Fetch returns the cached categories, loading them on first use
func (s *CategoryStore) Fetch(ctx context.Context) (cases.CategoryIndex, error) {
	if snap := s.container.Snapshot(); snap.Status == StatusSucceeded {
		return snap.Data, nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the categories from the backend
func (s *CategoryStore) Refresh(ctx context.Context) (cases.CategoryIndex, error) {
	return s.container.Run(ctx, func(ctx context.Context) (cases.CategoryIndex, error) {
		list, err := s.api.ListCategories(ctx)
		if err != nil {
			return cases.CategoryIndex{}, err
		}
		return cases.NewCategoryIndex(list), nil
	})
}

// Loaded reports whether the cache holds a successful fetch
func (s *CategoryStore) Loaded() bool {
	return s.container.Snapshot().Status == StatusSucceeded
}

// Lookup finds a cached category by id
func (s *CategoryStore) Lookup(id string) (cases.Category, bool) {
	return s.container.Snapshot().Data.Lookup(id)
}

// List returns the cached categories in display order
func (s *CategoryStore) List() []cases.Category {
	return s.container.Snapshot().Data.List()
}
