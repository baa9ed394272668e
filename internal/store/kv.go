package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/lingua/internal/attempt"
)

// Keys for the durable key-value blobs.
const (
	keyHistory     = "history"
	keyUserContext = "user_context"
)

// kv is a minimal durable key-value table. The attempt history and the
// user context text are each persisted as a single value under a fixed key.
type kv struct {
	db *sql.DB
}

func (s kv) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM keyvalue WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s kv) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO keyvalue (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s kv) remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM keyvalue WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// HistoryRepo persists the serialized attempt history under a single key.
// It implements attempt.Repo.
type HistoryRepo struct {
	kv kv
}

// Load reads and decodes the persisted history. A corrupted blob is
// discarded and removed rather than surfaced as an error, so a damaged
// store self-heals to an empty history.
func (r *HistoryRepo) Load(ctx context.Context) ([]attempt.Attempt, error) {
	blob, ok, err := r.kv.get(ctx, keyHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var attempts []attempt.Attempt
	if err := json.Unmarshal([]byte(blob), &attempts); err != nil {
		r.kv.remove(ctx, keyHistory)
		return nil, nil
	}

	// Pending placeholders from a run that died mid-enrichment would
	// otherwise claim to be generating forever.
	for i := range attempts {
		if attempts[i].Suggestion == attempt.SuggestionPending {
			attempts[i].Suggestion = attempt.SuggestionUnavailable
		}
		for j := range attempts[i].DetailedFeedback {
			if attempts[i].DetailedFeedback[j].AITip == attempt.TipPending {
				attempts[i].DetailedFeedback[j].AITip = attempt.TipMissing
			}
		}
	}

	return attempts, nil
}

// Save serializes and persists the full history.
func (r *HistoryRepo) Save(ctx context.Context, attempts []attempt.Attempt) error {
	b, err := json.Marshal(attempts)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return r.kv.set(ctx, keyHistory, string(b))
}

// Clear removes the persisted history.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	return r.kv.remove(ctx, keyHistory)
}

// ContextRepo persists the free-text user context that scopes question
// generation (interests, profession, topics to focus on).
type ContextRepo struct {
	kv kv
}

// Load returns the stored context text, or "" if none is set.
func (r *ContextRepo) Load(ctx context.Context) (string, error) {
	text, _, err := r.kv.get(ctx, keyUserContext)
	return text, err
}

// Save stores the context text. An empty string removes it.
func (r *ContextRepo) Save(ctx context.Context, text string) error {
	if text == "" {
		return r.kv.remove(ctx, keyUserContext)
	}
	return r.kv.set(ctx, keyUserContext, text)
}
