package settings

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestApplyKeepsUnsetFields(t *testing.T) {
	s := Defaults()
	s.GeminiAPIKey = sql.NullString{String: "existing-key", Valid: true}

	req := &UpdateRequest{Theme: strPtr("dark")}
	req.apply(s)

	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, "existing-key", s.GeminiAPIKey.String)
	assert.Equal(t, 5, s.FreeTokensPerUser)
}

func TestApplyEmptyStringClearsKey(t *testing.T) {
	s := Defaults()
	s.HFToken = sql.NullString{String: "hf-token", Valid: true}

	req := &UpdateRequest{HFToken: strPtr("")}
	req.apply(s)

	assert.False(t, s.HFToken.Valid)
}

func TestApplySetsAllFields(t *testing.T) {
	s := Defaults()

	req := &UpdateRequest{
		FreeTokensPerUser: intPtr(10),
		GeminiAPIKey:      strPtr("g-key"),
		Theme:             strPtr("green"),
		BackgroundType:    strPtr("video"),
		BackgroundURL:     strPtr("https://cdn.example/bg.mp4"),
		VideoMuted:        boolPtr(false),
	}
	req.apply(s)

	assert.Equal(t, 10, s.FreeTokensPerUser)
	assert.Equal(t, "g-key", s.GeminiAPIKey.String)
	assert.Equal(t, "green", s.Theme)
	assert.Equal(t, "video", s.BackgroundType)
	assert.Equal(t, "https://cdn.example/bg.mp4", s.BackgroundURL.String)
	assert.False(t, s.VideoMuted)
}

func TestViewMasksKeys(t *testing.T) {
	s := Defaults()
	s.GeminiAPIKey = sql.NullString{String: "secret-gemini", Valid: true}
	s.PixabayKey = sql.NullString{String: "secret-pixabay", Valid: true}

	view := NewView(s)
	assert.True(t, view.GeminiConfigured)
	assert.True(t, view.PixabayConfigured)
	assert.False(t, view.HFConfigured)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-gemini")
	assert.NotContains(t, string(raw), "secret-pixabay")
}

func TestPublicViewExposesBrandingOnly(t *testing.T) {
	s := Defaults()
	s.GeminiAPIKey = sql.NullString{String: "secret", Valid: true}
	s.BackgroundURL = sql.NullString{String: "https://cdn.example/bg.jpg", Valid: true}

	raw, err := json.Marshal(NewPublicView(s))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "free_tokens")
	assert.Contains(t, string(raw), "https://cdn.example/bg.jpg")
}

func TestSettingsCacheRoundTripKeepsKeys(t *testing.T) {
	s := Defaults()
	s.UnsplashKey = sql.NullString{String: "u-key", Valid: true}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var cached Settings
	require.NoError(t, json.Unmarshal(raw, &cached))
	assert.Equal(t, "u-key", cached.UnsplashKey.String)
	assert.True(t, cached.UnsplashKey.Valid)
}
