package image

import (
	"bytes"
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/pkg/images"
	"github.com/polltech/smarttutors/internal/pkg/storage"
)

// Generated is a resolved image plus the balance left after the charge.
type Generated struct {
	Log     *Log
	URL     string
	Source  string
	Balance int
}

type Service interface {
	// Generate resolves an image for the description through the provider
	// chain and charges one token once a URL exists. The chain itself never
	// fails: an unconfigured or broken provider falls through to the next,
	// and the placeholder closes the chain.
	Generate(ctx context.Context, userID uuid.UUID, req *GenerateRequest) (*Generated, error)

	// History returns the user's generated images, newest first.
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Log, error)
}

type service struct {
	repo     Repository
	ledger   ledger.Service
	settings settings.Service
	chain    *images.Chain
	store    storage.Storage
}

// NewService creates image service. Storage may be nil; synthesized
// placeholders then fall back to a hosted placeholder URL.
func NewService(repo Repository, ledgerSvc ledger.Service, settingsSvc settings.Service, chain *images.Chain, store storage.Storage) Service {
	return &service{
		repo:     repo,
		ledger:   ledgerSvc,
		settings: settingsSvc,
		chain:    chain,
		store:    store,
	}
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID, req *GenerateRequest) (*Generated, error) {
	affordable, _, err := s.ledger.CanAfford(ctx, userID, ledger.KindImage)
	if err != nil {
		return nil, err
	}
	if !affordable {
		return nil, ledger.ErrInsufficientTokens
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := s.chain.Resolve(ctx, images.Keys{
		HFToken:     cfg.Key(cfg.HFToken),
		PixabayKey:  cfg.Key(cfg.PixabayKey),
		UnsplashKey: cfg.Key(cfg.UnsplashKey),
		PexelsKey:   cfg.Key(cfg.PexelsKey),
	}, req.Description)

	if result.Source == images.SourcePlaceholder {
		if url := s.selfHostedPlaceholder(ctx, req.Description); url != "" {
			result.URL = url
		}
	}

	receipt, err := s.ledger.Charge(ctx, userID, ledger.KindImage, "image:"+result.Source)
	if err != nil {
		return nil, err
	}

	l := &Log{
		UserID:      userID,
		Description: req.Description,
		ImageURL:    sql.NullString{String: result.URL, Valid: true},
		APISource:   sql.NullString{String: result.Source, Valid: true},
	}
	if req.Subject != "" {
		l.Subject = sql.NullString{String: req.Subject, Valid: true}
	}
	if err := s.repo.Create(ctx, l); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to persist image log")
	}

	return &Generated{Log: l, URL: result.URL, Source: result.Source, Balance: receipt.Balance}, nil
}

// selfHostedPlaceholder renders a gradient card and stores it, so students
// without any configured provider still get an image served from our CDN.
func (s *service) selfHostedPlaceholder(ctx context.Context, description string) string {
	if s.store == nil {
		return ""
	}
	data, err := images.Synthesize(description)
	if err != nil {
		log.Warn().Err(err).Msg("placeholder synthesis failed")
		return ""
	}
	key := "placeholders/" + uuid.NewString() + ".png"
	if err := s.store.Put(ctx, key, bytes.NewReader(data), "image/png"); err != nil {
		log.Warn().Err(err).Msg("placeholder upload failed")
		return ""
	}
	return s.store.GetURL(key)
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Log, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
