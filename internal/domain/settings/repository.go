package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Get returns the settings row, inserting the defaults on first access.
func (r *repository) Get(ctx context.Context) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s Settings
	err := r.db.GetContext(ctx, &s, `SELECT * FROM admin_settings WHERE id = 1`)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}

	def := Defaults()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO admin_settings (id, free_tokens_per_user, theme, background_type, video_muted)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		def.FreeTokensPerUser, def.Theme, def.BackgroundType, def.VideoMuted,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: seed settings: %v", ErrInternal, err)
	}
	if err := r.db.GetContext(ctx, &s, `SELECT * FROM admin_settings WHERE id = 1`); err != nil {
		return nil, fmt.Errorf("%w: reload settings: %v", ErrInternal, err)
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Settings) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_settings SET
			free_tokens_per_user = $1,
			gemini_api_key       = $2,
			hf_token             = $3,
			pixabay_key          = $4,
			unsplash_key         = $5,
			pexels_key           = $6,
			theme                = $7,
			background_type      = $8,
			background_url       = $9,
			video_muted          = $10,
			updated_at           = NOW()
		WHERE id = 1`,
		s.FreeTokensPerUser, s.GeminiAPIKey, s.HFToken, s.PixabayKey,
		s.UnsplashKey, s.PexelsKey, s.Theme, s.BackgroundType,
		s.BackgroundURL, s.VideoMuted,
	)
	if err != nil {
		return fmt.Errorf("%w: update settings: %v", ErrInternal, err)
	}
	return nil
}
