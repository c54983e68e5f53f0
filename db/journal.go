// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
)

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 100

// Journal is an append-only log of ledger events
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Record stores the events of one ledger operation in a single transaction
func (j *Journal) Record(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	recordedAt := time.Now().UTC()
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event %d: %w", e.Seq, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO ledger_event (seq, id, kind, payload, recorded_at)
			VALUES ($1, $2, $3, $4, $5)
		`, int64(e.Seq), auth.NewEventID(), e.Kind, string(payload), recordedAt)
		if err != nil {
			return fmt.Errorf("failed to insert event %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	return nil
}

// List returns up to limit entries with seq greater than after, in seq order
func (j *Journal) List(ctx context.Context, after uint64, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, payload, recorded_at
		FROM ledger_event
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2
	`, int64(after), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var entry models.JournalEntry
		var payload string
		if err := rows.Scan(&entry.ID, &payload, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &entry.Event); err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return entries, nil
}

// LastSeq returns the highest recorded seq, or 0 for an empty journal.
// A new ledger continues numbering from it.
func (j *Journal) LastSeq(ctx context.Context) (uint64, error) {
	var last int64
	err := j.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM ledger_event`).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to read last seq: %w", err)
	}
	return uint64(last), nil
}
