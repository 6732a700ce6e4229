package settings

import "database/sql"

// UpdateRequest carries a partial settings update. Nil fields keep the
// current value; empty-string keys clear the stored key.
type UpdateRequest struct {
	FreeTokensPerUser *int    `json:"free_tokens_per_user" validate:"omitempty,min=0"`
	GeminiAPIKey      *string `json:"gemini_api_key"`
	HFToken           *string `json:"hf_token"`
	PixabayKey        *string `json:"pixabay_key"`
	UnsplashKey       *string `json:"unsplash_key"`
	PexelsKey         *string `json:"pexels_key"`
	Theme             *string `json:"theme" validate:"omitempty,oneof=blue dark light green"`
	BackgroundType    *string `json:"background_type" validate:"omitempty,oneof=image video"`
	BackgroundURL     *string `json:"background_url"`
	VideoMuted        *bool   `json:"video_muted"`
}

func (r *UpdateRequest) apply(s *Settings) {
	if r.FreeTokensPerUser != nil {
		s.FreeTokensPerUser = *r.FreeTokensPerUser
	}
	applyKey(&s.GeminiAPIKey, r.GeminiAPIKey)
	applyKey(&s.HFToken, r.HFToken)
	applyKey(&s.PixabayKey, r.PixabayKey)
	applyKey(&s.UnsplashKey, r.UnsplashKey)
	applyKey(&s.PexelsKey, r.PexelsKey)
	if r.Theme != nil {
		s.Theme = *r.Theme
	}
	if r.BackgroundType != nil {
		s.BackgroundType = *r.BackgroundType
	}
	applyKey(&s.BackgroundURL, r.BackgroundURL)
	if r.VideoMuted != nil {
		s.VideoMuted = *r.VideoMuted
	}
}

func applyKey(dst *sql.NullString, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = sql.NullString{}
		return
	}
	*dst = sql.NullString{String: *src, Valid: true}
}

// View is the admin-facing settings payload. Keys are masked, only their
// presence is reported.
type View struct {
	FreeTokensPerUser  int    `json:"free_tokens_per_user"`
	GeminiConfigured   bool   `json:"gemini_configured"`
	HFConfigured       bool   `json:"hf_configured"`
	PixabayConfigured  bool   `json:"pixabay_configured"`
	UnsplashConfigured bool   `json:"unsplash_configured"`
	PexelsConfigured   bool   `json:"pexels_configured"`
	Theme              string `json:"theme"`
	BackgroundType     string `json:"background_type"`
	BackgroundURL      string `json:"background_url,omitempty"`
	VideoMuted         bool   `json:"video_muted"`
}

func NewView(s *Settings) *View {
	return &View{
		FreeTokensPerUser:  s.FreeTokensPerUser,
		GeminiConfigured:   s.GeminiAPIKey.Valid,
		HFConfigured:       s.HFToken.Valid,
		PixabayConfigured:  s.PixabayKey.Valid,
		UnsplashConfigured: s.UnsplashKey.Valid,
		PexelsConfigured:   s.PexelsKey.Valid,
		Theme:              s.Theme,
		BackgroundType:     s.BackgroundType,
		BackgroundURL:      s.Key(s.BackgroundURL),
		VideoMuted:         s.VideoMuted,
	}
}

// PublicView is what unauthenticated clients may see (branding only).
type PublicView struct {
	Theme          string `json:"theme"`
	BackgroundType string `json:"background_type"`
	BackgroundURL  string `json:"background_url,omitempty"`
	VideoMuted     bool   `json:"video_muted"`
}

func NewPublicView(s *Settings) *PublicView {
	return &PublicView{
		Theme:          s.Theme,
		BackgroundType: s.BackgroundType,
		BackgroundURL:  s.Key(s.BackgroundURL),
		VideoMuted:     s.VideoMuted,
	}
}
