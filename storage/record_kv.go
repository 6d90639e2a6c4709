package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// CollectionName is the pocketbase collection holding the key-value records.
const CollectionName = "kv_records"

// RecordKV stores each key as one record of the kv_records collection.
// The collection is created by collections.Setup.
type RecordKV struct {
	app core.App
}

// NewRecordKV returns a KV backed by the app's kv_records collection.
func NewRecordKV(app core.App) *RecordKV {
	return &RecordKV{app: app}
}

func (s *RecordKV) find(key string) (*core.Record, error) {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionName,
		"record_key = {:key}",
		dbx.Params{"key": key},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %q: %w", key, err)
	}
	return record, nil
}

func (s *RecordKV) Get(key string) (string, error) {
	record, err := s.find(key)
	if err != nil {
		return "", err
	}
	return record.GetString("payload"), nil
}

func (s *RecordKV) Set(key, value string) error {
	record, err := s.find(key)
	if errors.Is(err, ErrNotFound) {
		col, colErr := s.app.FindCollectionByNameOrId(CollectionName)
		if colErr != nil {
			return fmt.Errorf("collection %s: %w", CollectionName, colErr)
		}
		record = core.NewRecord(col)
		record.Set("record_key", key)
	} else if err != nil {
		return err
	}

	record.Set("payload", value)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *RecordKV) Delete(key string) error {
	record, err := s.find(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
