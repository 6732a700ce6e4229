package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/pkg/gemini"
)

// ProfileSource resolves the learner profile used to shape tutor prompts.
// Implemented by an adapter over the user repository in cmd/api.
type ProfileSource interface {
	Profile(ctx context.Context, userID uuid.UUID) (educationLevel, curriculum string, err error)
}

// Result is a completed tutor exchange plus the balance left afterwards.
type Result struct {
	Chat       *Chat
	Structured *gemini.Structured
	Balance    int
}

type Service interface {
	// Ask runs one tutor request. The student is charged only after the
	// model produced an answer; adapter failures cost nothing.
	Ask(ctx context.Context, userID uuid.UUID, req *AskRequest) (*Result, error)

	// History returns the user's past exchanges, newest first, with the
	// total count for pagination.
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Chat, int, error)
}

type service struct {
	repo     Repository
	ledger   ledger.Service
	settings settings.Service
	profiles ProfileSource
	tutor    *gemini.Client
}

// NewService creates chat service
func NewService(repo Repository, ledgerSvc ledger.Service, settingsSvc settings.Service, profiles ProfileSource, tutor *gemini.Client) Service {
	return &service{
		repo:     repo,
		ledger:   ledgerSvc,
		settings: settingsSvc,
		profiles: profiles,
		tutor:    tutor,
	}
}

func (s *service) Ask(ctx context.Context, userID uuid.UUID, req *AskRequest) (*Result, error) {
	affordable, _, err := s.ledger.CanAfford(ctx, userID, req.Kind)
	if err != nil {
		return nil, err
	}
	if !affordable {
		return nil, ledger.ErrInsufficientTokens
	}

	level, curriculum, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	apiKey := cfg.Key(cfg.GeminiAPIKey)

	answer, err := s.generate(ctx, apiKey, req, level, curriculum)
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return nil, ErrNotConfigured
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("kind", req.Kind).Msg("tutor call failed")
		return nil, fmt.Errorf("%w: %v", ErrAdapterFailure, err)
	}

	// Charge only now that an answer exists. A concurrent spend can still
	// win the race, in which case the answer is discarded uncharged.
	receipt, err := s.ledger.Charge(ctx, userID, req.Kind, "chat:"+req.Kind)
	if err != nil {
		return nil, err
	}

	c := &Chat{
		UserID:      userID,
		Question:    req.Question,
		Answer:      answer,
		RequestKind: req.Kind,
		TokensUsed:  -receipt.Delta,
	}
	if req.Subject != "" {
		c.Subject = sql.NullString{String: req.Subject, Valid: true}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		// The charge stands; history just misses this row.
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to persist chat")
	}

	result := &Result{Chat: c, Balance: receipt.Balance}
	if req.Kind == KindQuestion {
		structured := gemini.ParseStructured(answer)
		result.Structured = &structured
	}
	return result, nil
}

func (s *service) generate(ctx context.Context, apiKey string, req *AskRequest, level, curriculum string) (string, error) {
	switch req.Kind {
	case KindExam:
		return s.tutor.GenerateExam(ctx, apiKey, gemini.ExamRequest{
			Topic:          req.Question,
			Subject:        req.Subject,
			EducationLevel: level,
			Curriculum:     curriculum,
			NumQuestions:   req.NumQuestions,
			QuestionType:   req.QuestionType,
		})
	case KindCombined:
		return s.tutor.GenerateCombined(ctx, apiKey, gemini.CombinedRequest{
			Topic:          req.Question,
			Subject:        req.Subject,
			EducationLevel: level,
			Curriculum:     curriculum,
		})
	default:
		return s.tutor.Answer(ctx, apiKey, gemini.AnswerRequest{
			Question:       req.Question,
			Subject:        req.Subject,
			EducationLevel: level,
			Curriculum:     curriculum,
		})
	}
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Chat, int, error) {
	chats, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}
