package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const settingsTable = "settings"

// APIKeySetting is the settings key holding the generative model credential.
const APIKeySetting = "gemini_api_key"

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(settingsTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// ErrEmptyKey is returned when saving a blank API key.
var ErrEmptyKey = errors.New("API key is empty")

// KeyStore persists the single generative model API key.
type KeyStore struct {
	repo SettingsRepo
}

// NewKeyStore wraps a SettingsRepo.
func NewKeyStore(repo SettingsRepo) *KeyStore {
	return &KeyStore{repo: repo}
}

// Load returns the stored key, or "" when none is saved.
func (k *KeyStore) Load(ctx context.Context) (string, error) {
	v, _, err := k.repo.Get(ctx, APIKeySetting)
	return v, err
}

// Save stores the trimmed key. Blank input is rejected and leaves the
// previous key in place.
func (k *KeyStore) Save(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	if err := k.repo.Set(ctx, APIKeySetting, key); err != nil {
		return "", err
	}
	return key, nil
}

// Clear removes the stored key.
func (k *KeyStore) Clear(ctx context.Context) error {
	return k.repo.Delete(ctx, APIKeySetting)
}
