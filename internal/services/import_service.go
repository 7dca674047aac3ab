package services

import (
	"context"
	"sync"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/merge"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/store"
)

// ImportResult reports what an import did. A full-hierarchy payload is
// destructive, so it is only applied once the caller confirms; until then
// RequiresConfirm is set and nothing has changed.
type ImportResult struct {
	Kind            string `json:"kind"`
	Imported        int    `json:"imported"`
	RequiresConfirm bool   `json:"requiresConfirm"`
	ActiveGradeID   string `json:"activeGradeId,omitempty"`
}

// ImportService reconciles pasted backup data and topic lists with the
// stored hierarchy.
type ImportService interface {
	Import(ctx context.Context, gradeID, subjectID, text string, confirmed bool) (ImportResult, error)
}

type importService struct {
	store *store.Store
	mu    *sync.Mutex
}

// NewImportService creates a new ImportService.
func NewImportService(st *store.Store, mu *sync.Mutex) ImportService {
	return &importService{store: st, mu: mu}
}

func (s *importService) Import(ctx context.Context, gradeID, subjectID, text string, confirmed bool) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	payload := merge.Classify(text)
	log.Debug("import classified as %s", payload.Kind)

	switch payload.Kind {
	case merge.FullHierarchy:
		if !confirmed {
			// Replacing everything needs an explicit go-ahead.
			return ImportResult{Kind: payload.Kind.String(), RequiresConfirm: true}, nil
		}
		clean, activeID := merge.ReplaceAll(payload.Grades)
		if err := s.store.SaveGrades(ctx, clean); err != nil {
			return ImportResult{}, errors.NewInternalError(err)
		}
		log.Info("hierarchy replaced from import: %d grades, active=%s", len(clean), activeID)
		return ImportResult{
			Kind:          payload.Kind.String(),
			Imported:      countRows(clean),
			ActiveGradeID: activeID,
		}, nil

	case merge.SubjectList:
		snap, err := s.store.LoadSnapshot(ctx)
		if err != nil {
			return ImportResult{}, errors.NewInternalError(err)
		}
		grades, err := merge.MergeSubjects(snap.Grades, gradeID, payload.Subjects)
		if err != nil {
			return ImportResult{}, err
		}
		if err := s.store.SaveGrades(ctx, grades); err != nil {
			return ImportResult{}, errors.NewInternalError(err)
		}
		log.Info("merged %d subjects into grade %s", len(payload.Subjects), gradeID)
		return ImportResult{Kind: payload.Kind.String(), Imported: countSubjectRows(payload.Subjects)}, nil

	case merge.PlainText:
		snap, err := s.store.LoadSnapshot(ctx)
		if err != nil {
			return ImportResult{}, errors.NewInternalError(err)
		}
		grades, imported, err := merge.ImportText(snap.Grades, gradeID, subjectID, payload.Text)
		if err != nil {
			return ImportResult{}, err
		}
		// Markers can create subjects even when no rows follow, so the
		// hierarchy is saved regardless of the imported count.
		if err := s.store.SaveGrades(ctx, grades); err != nil {
			return ImportResult{}, errors.NewInternalError(err)
		}
		log.Info("imported %d topics from text", imported)
		return ImportResult{Kind: payload.Kind.String(), Imported: imported}, nil

	default:
		return ImportResult{}, errors.NewFormatMismatchError("payload matches no known import shape")
	}
}

func countRows(grades []models.Grade) int {
	total := 0
	for _, g := range grades {
		total += countSubjectRows(g.Subjects)
	}
	return total
}

func countSubjectRows(subjects []models.Subject) int {
	total := 0
	for _, sub := range subjects {
		total += len(sub.Rows)
	}
	return total
}
