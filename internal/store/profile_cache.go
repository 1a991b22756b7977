package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/models"
)

// profileCache is the SQLite-backed implementation of [ProfileCache]. The
// crypto profile is stored as a single JSON document; the cache never
// needs to query inside it.
type profileCache struct {
	db     *DB
	logger *logger.Logger
}

// NewProfileCache constructs a [ProfileCache] backed by the provided
// database connection and logger.
func NewProfileCache(db *DB, logger *logger.Logger) ProfileCache {
	logger.Debug().Msg("creating profile cache")
	return &profileCache{
		db:     db,
		logger: logger,
	}
}

// SaveProfile implements [ProfileCache].
func (c *profileCache) SaveProfile(ctx context.Context, user models.UserRecord) error {
	log := logger.FromContext(ctx)

	if user.Email == "" {
		return fmt.Errorf("save profile: empty email")
	}

	cryptoJSON, err := json.Marshal(user.Crypto)
	if err != nil {
		return fmt.Errorf("save profile: marshal crypto profile: %w", err)
	}

	_, err = c.db.ExecContext(ctx, upsertProfile,
		user.Email, user.UserID, user.Name, string(cryptoJSON), time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "SaveProfile").Msg("error upserting cached profile")
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

// GetProfile implements [ProfileCache].
func (c *profileCache) GetProfile(ctx context.Context, email string) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	var (
		user       models.UserRecord
		cryptoJSON string
		cachedAt   time.Time
	)

	row := c.db.QueryRowContext(ctx, selectProfileByEmail, email)
	err := row.Scan(&user.UserID, &user.Name, &cryptoJSON, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, ErrProfileNotCached
	}
	if err != nil {
		log.Err(err).Str("func", "GetProfile").Msg("error reading cached profile")
		return models.UserRecord{}, fmt.Errorf("get profile: %w", err)
	}

	if err = json.Unmarshal([]byte(cryptoJSON), &user.Crypto); err != nil {
		// A cache row that no longer parses is useless; drop it.
		_ = c.Invalidate(ctx, email)
		return models.UserRecord{}, ErrProfileNotCached
	}

	user.Email = email
	return user, nil
}

// Invalidate implements [ProfileCache].
func (c *profileCache) Invalidate(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if _, err := c.db.ExecContext(ctx, deleteProfileByEmail, email); err != nil {
		log.Err(err).Str("func", "Invalidate").Msg("error deleting cached profile")
		return fmt.Errorf("invalidate profile: %w", err)
	}
	return nil
}
