package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/reward"
	"github.com/islandlog/islandlog/internal/store"
)

// ProgressService owns the study hierarchy and the row update path that
// feeds the reward ledger.
type ProgressService interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	UpdateRowField(ctx context.Context, gradeID, subjectID, rowID, field string, value any) (models.Row, reward.Delta, error)
	AddRow(ctx context.Context, gradeID, subjectID, topic string) (models.Row, error)
	DeleteRow(ctx context.Context, gradeID, subjectID, rowID string) error
	ReorderRows(ctx context.Context, gradeID, subjectID string, orderedIDs []string) error

	CreateGrade(ctx context.Context, name, color string) (models.Grade, error)
	UpdateGrade(ctx context.Context, gradeID, name, color string) error
	DeleteGrade(ctx context.Context, gradeID string) error
	ReorderGrades(ctx context.Context, orderedIDs []string) error
	CreateSubject(ctx context.Context, gradeID, name, color string) (models.Subject, error)
	UpdateSubject(ctx context.Context, gradeID, subjectID, name, color string) error
	DeleteSubject(ctx context.Context, gradeID, subjectID string) error
	ReorderSubjects(ctx context.Context, gradeID string, orderedIDs []string) error

	SetTargetDate(ctx context.Context, date string) error
	FactoryReset(ctx context.Context) error
}

type progressService struct {
	store *store.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewProgressService creates a new ProgressService. The mutex serializes
// every state mutation across services: the engine is a single logical
// writer over the persisted blobs.
func NewProgressService(st *store.Store, mu *sync.Mutex) ProgressService {
	return &progressService{store: st, mu: mu, now: time.Now}
}

func (s *progressService) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Snapshot{}, errors.NewInternalError(err)
	}
	return snap, nil
}

func (s *progressService) UpdateRowField(ctx context.Context, gradeID, subjectID, rowID, field string, value any) (models.Row, reward.Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Debug("updating row field: row_id=%s field=%s", rowID, field)

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Row{}, reward.Delta{}, errors.NewInternalError(err)
	}

	gi, si, ri, err := locateRow(snap.Grades, gradeID, subjectID, rowID)
	if err != nil {
		return models.Row{}, reward.Delta{}, err
	}

	now := s.now()
	updated, delta, err := reward.ApplyFieldChange(snap.Grades[gi].Subjects[si].Rows[ri], field, value, snap.Settings, now)
	if err != nil {
		return models.Row{}, reward.Delta{}, err
	}

	snap.Grades[gi].Subjects[si].Rows[ri] = updated
	userData := reward.Apply(snap.UserData, delta, now)

	if err := s.store.SaveProgress(ctx, snap.Grades, userData); err != nil {
		return models.Row{}, reward.Delta{}, errors.NewInternalError(err)
	}

	if delta.Exp != 0 || delta.Coins != 0 {
		log.Info("row change rewarded: field=%s exp=%+d coins=%+d", field, delta.Exp, delta.Coins)
	}
	return updated, delta, nil
}

func (s *progressService) AddRow(ctx context.Context, gradeID, subjectID, topic string) (models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Row{}, errors.NewInternalError(err)
	}

	gi, si, err := locateSubject(snap.Grades, gradeID, subjectID)
	if err != nil {
		return models.Row{}, err
	}

	row := models.Row{ID: uuid.NewString(), Topic: topic}
	snap.Grades[gi].Subjects[si].Rows = append(snap.Grades[gi].Subjects[si].Rows, row)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return models.Row{}, errors.NewInternalError(err)
	}
	return row, nil
}

func (s *progressService) DeleteRow(ctx context.Context, gradeID, subjectID, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi, si, ri, err := locateRow(snap.Grades, gradeID, subjectID, rowID)
	if err != nil {
		return err
	}

	rows := snap.Grades[gi].Subjects[si].Rows
	snap.Grades[gi].Subjects[si].Rows = append(rows[:ri], rows[ri+1:]...)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) ReorderRows(ctx context.Context, gradeID, subjectID string, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi, si, err := locateSubject(snap.Grades, gradeID, subjectID)
	if err != nil {
		return err
	}

	reordered, err := reorderByID(snap.Grades[gi].Subjects[si].Rows, orderedIDs, func(r models.Row) string { return r.ID })
	if err != nil {
		return err
	}
	snap.Grades[gi].Subjects[si].Rows = reordered
	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) CreateGrade(ctx context.Context, name, color string) (models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return models.Grade{}, errors.NewValidationError("name", "cannot be empty")
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Grade{}, errors.NewInternalError(err)
	}

	g := models.Grade{
		ID:       "g_" + uuid.NewString(),
		Name:     name,
		Color:    color,
		Subjects: []models.Subject{},
	}
	snap.Grades = append(snap.Grades, g)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return models.Grade{}, errors.NewInternalError(err)
	}
	return g, nil
}

func (s *progressService) UpdateGrade(ctx context.Context, gradeID, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi := findGrade(snap.Grades, gradeID)
	if gi < 0 {
		return errors.NewNotFoundError("grade", gradeID)
	}
	if name != "" {
		snap.Grades[gi].Name = name
	}
	if color != "" {
		snap.Grades[gi].Color = color
	}

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) DeleteGrade(ctx context.Context, gradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi := findGrade(snap.Grades, gradeID)
	if gi < 0 {
		return errors.NewNotFoundError("grade", gradeID)
	}
	if len(snap.Grades) == 1 {
		return errors.NewValidationError("grade", "at least one grade must remain")
	}

	// Deleting a grade cascades to its subjects and rows.
	snap.Grades = append(snap.Grades[:gi], snap.Grades[gi+1:]...)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) ReorderGrades(ctx context.Context, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	reordered, err := reorderByID(snap.Grades, orderedIDs, func(g models.Grade) string { return g.ID })
	if err != nil {
		return err
	}
	snap.Grades = reordered

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) ReorderSubjects(ctx context.Context, gradeID string, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi := findGrade(snap.Grades, gradeID)
	if gi < 0 {
		return errors.NewNotFoundError("grade", gradeID)
	}

	reordered, err := reorderByID(snap.Grades[gi].Subjects, orderedIDs, func(sub models.Subject) string { return sub.ID })
	if err != nil {
		return err
	}
	snap.Grades[gi].Subjects = reordered

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) CreateSubject(ctx context.Context, gradeID, name, color string) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return models.Subject{}, errors.NewValidationError("name", "cannot be empty")
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Subject{}, errors.NewInternalError(err)
	}

	gi := findGrade(snap.Grades, gradeID)
	if gi < 0 {
		return models.Subject{}, errors.NewNotFoundError("grade", gradeID)
	}

	sub := models.Subject{
		ID:    "s_" + uuid.NewString(),
		Name:  name,
		Color: color,
		Rows:  []models.Row{},
	}
	snap.Grades[gi].Subjects = append(snap.Grades[gi].Subjects, sub)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return models.Subject{}, errors.NewInternalError(err)
	}
	return sub, nil
}

func (s *progressService) UpdateSubject(ctx context.Context, gradeID, subjectID, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi, si, err := locateSubject(snap.Grades, gradeID, subjectID)
	if err != nil {
		return err
	}
	if name != "" {
		snap.Grades[gi].Subjects[si].Name = name
	}
	if color != "" {
		snap.Grades[gi].Subjects[si].Color = color
	}

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) DeleteSubject(ctx context.Context, gradeID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	gi, si, err := locateSubject(snap.Grades, gradeID, subjectID)
	if err != nil {
		return err
	}

	subjects := snap.Grades[gi].Subjects
	snap.Grades[gi].Subjects = append(subjects[:si], subjects[si+1:]...)

	if err := s.store.SaveGrades(ctx, snap.Grades); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) SetTargetDate(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveTargetDate(ctx, date); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) FactoryReset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.FromContext(ctx).Warn("factory reset requested")
	if err := s.store.Reset(ctx); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// reorderByID rearranges items to match orderedIDs, which must be a
// complete permutation of the existing ids.
func reorderByID[T any](items []T, orderedIDs []string, id func(T) string) ([]T, error) {
	if len(orderedIDs) != len(items) {
		return nil, errors.NewValidationError("order", "must list every id exactly once")
	}

	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[id(item)] = item
	}

	reordered := make([]T, 0, len(items))
	for _, wanted := range orderedIDs {
		item, ok := byID[wanted]
		if !ok {
			return nil, errors.NewValidationError("order", "unknown id "+wanted)
		}
		delete(byID, wanted)
		reordered = append(reordered, item)
	}
	return reordered, nil
}

func findGrade(grades []models.Grade, gradeID string) int {
	for i := range grades {
		if grades[i].ID == gradeID {
			return i
		}
	}
	return -1
}

func locateSubject(grades []models.Grade, gradeID, subjectID string) (gi, si int, err error) {
	gi = findGrade(grades, gradeID)
	if gi < 0 {
		return 0, 0, errors.NewNotFoundError("grade", gradeID)
	}
	for i := range grades[gi].Subjects {
		if grades[gi].Subjects[i].ID == subjectID {
			return gi, i, nil
		}
	}
	return 0, 0, errors.NewNotFoundError("subject", subjectID)
}

func locateRow(grades []models.Grade, gradeID, subjectID, rowID string) (gi, si, ri int, err error) {
	gi, si, err = locateSubject(grades, gradeID, subjectID)
	if err != nil {
		return 0, 0, 0, err
	}
	for i := range grades[gi].Subjects[si].Rows {
		if grades[gi].Subjects[si].Rows[i].ID == rowID {
			return gi, si, i, nil
		}
	}
	return 0, 0, 0, errors.NewNotFoundError("row", rowID)
}
