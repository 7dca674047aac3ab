package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/store"
)

// LibraryService manages bookmarked study resources and their categories.
type LibraryService interface {
	List(ctx context.Context) ([]models.LibraryItem, []string, error)
	Add(ctx context.Context, title, url, category string) (models.LibraryItem, error)
	Update(ctx context.Context, id, title, url, category string) error
	Delete(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
}

type libraryService struct {
	store *store.Store
	mu    *sync.Mutex
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(st *store.Store, mu *sync.Mutex) LibraryService {
	return &libraryService{store: st, mu: mu}
}

func (s *libraryService) List(ctx context.Context) ([]models.LibraryItem, []string, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	return snap.Library, snap.LibraryCategories, nil
}

func (s *libraryService) Add(ctx context.Context, title, url, category string) (models.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		return models.LibraryItem{}, errors.NewValidationError("title", "cannot be empty")
	}
	if url == "" {
		return models.LibraryItem{}, errors.NewValidationError("url", "cannot be empty")
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.LibraryItem{}, errors.NewInternalError(err)
	}

	item := models.LibraryItem{
		ID:       "l_" + uuid.NewString(),
		Title:    title,
		URL:      url,
		Category: category,
	}
	snap.Library = append(snap.Library, item)

	if err := s.store.SaveLibrary(ctx, snap.Library); err != nil {
		return models.LibraryItem{}, errors.NewInternalError(err)
	}
	return item, nil
}

func (s *libraryService) Update(ctx context.Context, id, title, url, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	for i := range snap.Library {
		if snap.Library[i].ID != id {
			continue
		}
		if title != "" {
			snap.Library[i].Title = title
		}
		if url != "" {
			snap.Library[i].URL = url
		}
		if category != "" {
			snap.Library[i].Category = category
		}
		if err := s.store.SaveLibrary(ctx, snap.Library); err != nil {
			return errors.NewInternalError(err)
		}
		return nil
	}
	return errors.NewNotFoundError("library item", id)
}

func (s *libraryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	for i := range snap.Library {
		if snap.Library[i].ID != id {
			continue
		}
		snap.Library = append(snap.Library[:i], snap.Library[i+1:]...)
		if err := s.store.SaveLibrary(ctx, snap.Library); err != nil {
			return errors.NewInternalError(err)
		}
		return nil
	}
	return errors.NewNotFoundError("library item", id)
}

func (s *libraryService) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return errors.NewValidationError("name", "cannot be empty")
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	for _, c := range snap.LibraryCategories {
		if c == name {
			return nil // already present
		}
	}
	snap.LibraryCategories = append(snap.LibraryCategories, name)

	if err := s.store.SaveCategories(ctx, snap.LibraryCategories); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *libraryService) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	kept := snap.LibraryCategories[:0]
	for _, c := range snap.LibraryCategories {
		if c != name {
			kept = append(kept, c)
		}
	}
	snap.LibraryCategories = kept

	// Items in the removed category keep the label; the category list is
	// only a picker.
	if err := s.store.SaveCategories(ctx, snap.LibraryCategories); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}
