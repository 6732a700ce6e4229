package settings

import (
	"database/sql"
	"time"
)

// Settings is the single-row admin configuration: free token grant, provider
// API keys and branding. Adapters read keys from here per request, so an
// admin update takes effect without restarts or process-global state.
// The struct round-trips through the Redis cache; API responses go through
// View/PublicView, which mask the keys.
type Settings struct {
	ID                int            `db:"id" json:"id"`
	FreeTokensPerUser int            `db:"free_tokens_per_user" json:"free_tokens_per_user"`
	GeminiAPIKey      sql.NullString `db:"gemini_api_key" json:"gemini_api_key"`
	HFToken           sql.NullString `db:"hf_token" json:"hf_token"`
	PixabayKey        sql.NullString `db:"pixabay_key" json:"pixabay_key"`
	UnsplashKey       sql.NullString `db:"unsplash_key" json:"unsplash_key"`
	PexelsKey         sql.NullString `db:"pexels_key" json:"pexels_key"`
	Theme             string         `db:"theme" json:"theme"`
	BackgroundType    string         `db:"background_type" json:"background_type"`
	BackgroundURL     sql.NullString `db:"background_url" json:"background_url"`
	VideoMuted        bool           `db:"video_muted" json:"video_muted"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Key returns a provider API key by name, empty when unset.
func (s *Settings) Key(field sql.NullString) string {
	if field.Valid {
		return field.String
	}
	return ""
}

// Defaults returns the settings row created on first access.
func Defaults() *Settings {
	return &Settings{
		ID:                1,
		FreeTokensPerUser: 5,
		Theme:             "blue",
		BackgroundType:    "image",
		VideoMuted:        true,
	}
}
