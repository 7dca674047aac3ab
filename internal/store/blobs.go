package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/sanitize"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Get returns the raw blob for a key, or nil when the key has never been
// written.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, error) {
	query, args, err := sqlBuilder.
		Select("value").
		From("blobs").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to read blob %s: %v", key, err)
		return nil, err
	}
	return json.RawMessage(value), nil
}

// Put writes one blob.
func (s *Store) Put(ctx context.Context, key string, value json.RawMessage) error {
	query, args, err := upsert(key, value)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("failed to write blob %s: %v", key, err)
		return err
	}
	s.log.Debug("wrote blob %s (%d bytes)", key, len(value))
	return nil
}

// PutJSON marshals a value and writes it under the key.
func (s *Store) PutJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

// Reset wipes every blob, returning the store to factory state.
func (s *Store) Reset(ctx context.Context) error {
	query, args, err := sqlBuilder.Delete("blobs").ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("failed to reset store: %v", err)
		return err
	}
	s.log.Warn("store reset to factory state")
	return nil
}

// LoadSnapshot reads all six blobs and repairs them into a usable state.
// Missing or corrupt keys come back as their defaults.
func (s *Store) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	start := time.Now()

	var raw sanitize.RawSnapshot
	reads := []struct {
		key  string
		dest *json.RawMessage
	}{
		{KeyGrades, &raw.Grades},
		{KeyUserData, &raw.UserData},
		{KeyLibrary, &raw.Library},
		{KeyCategories, &raw.Categories},
		{KeySettings, &raw.Settings},
		{KeyTargetDate, &raw.TargetDate},
	}
	for _, r := range reads {
		value, err := s.Get(ctx, r.key)
		if err != nil {
			return models.Snapshot{}, err
		}
		*r.dest = value
	}

	snap := sanitize.Snapshot(raw)
	s.log.Debug("snapshot loaded in %v", time.Since(start))
	return snap, nil
}

type blobWrite struct {
	key   string
	value any
}

func writeBlobs(ctx context.Context, tx *sql.Tx, writes []blobWrite) error {
	for _, w := range writes {
		raw, err := json.Marshal(w.value)
		if err != nil {
			return fmt.Errorf("marshal blob %s: %w", w.key, err)
		}
		query, args, err := upsert(w.key, raw)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("write blob %s: %w", w.key, err)
		}
	}
	return nil
}

// SaveSnapshot writes all six blobs in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap models.Snapshot) error {
	writes := []blobWrite{
		{KeyGrades, snap.Grades},
		{KeyUserData, snap.UserData},
		{KeyLibrary, snap.Library},
		{KeyCategories, snap.LibraryCategories},
		{KeySettings, snap.Settings},
		{KeyTargetDate, snap.TargetDate},
	}

	return s.tx(ctx, func(tx *sql.Tx) error {
		return writeBlobs(ctx, tx, writes)
	})
}

// SaveProgress writes the hierarchy and the wallet in one transaction.
// A row change and the reward it earned land together or not at all.
func (s *Store) SaveProgress(ctx context.Context, grades []models.Grade, u models.UserData) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		return writeBlobs(ctx, tx, []blobWrite{
			{KeyGrades, grades},
			{KeyUserData, u},
		})
	})
}

// Typed per-blob writers. Mutating endpoints touch one slice of state and
// persist just that slice.

func (s *Store) SaveGrades(ctx context.Context, grades []models.Grade) error {
	return s.PutJSON(ctx, KeyGrades, grades)
}

func (s *Store) SaveUserData(ctx context.Context, u models.UserData) error {
	return s.PutJSON(ctx, KeyUserData, u)
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	return s.PutJSON(ctx, KeySettings, settings)
}

func (s *Store) SaveLibrary(ctx context.Context, items []models.LibraryItem) error {
	return s.PutJSON(ctx, KeyLibrary, items)
}

func (s *Store) SaveCategories(ctx context.Context, categories []string) error {
	return s.PutJSON(ctx, KeyCategories, categories)
}

func (s *Store) SaveTargetDate(ctx context.Context, date string) error {
	return s.PutJSON(ctx, KeyTargetDate, date)
}

func upsert(key string, value json.RawMessage) (string, []any, error) {
	return sqlBuilder.
		Insert("blobs").
		Columns("key", "value").
		Values(key, string(value)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
}
