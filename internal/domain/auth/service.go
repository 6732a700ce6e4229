package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/pkg/jwt"
	"github.com/polltech/smarttutors/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	ledger     ledger.Service
	settings   settings.Service
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, ledgerSvc ledger.Service, settingsSvc settings.Service, jwtService *jwt.Service, redis *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		ledger:     ledgerSvc,
		settings:   settingsSvc,
		jwtService: jwtService,
		redis:      redis,
	}
}

// Register creates a new student account and grants the configured signup
// bonus through the ledger.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = normalizeUsername(req.Username)

	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		Role:         user.RoleStudent,
		TokenBalance: 0,
	}
	if req.EducationLevel != "" {
		u.EducationLevel = sql.NullString{String: req.EducationLevel, Valid: true}
	}
	if req.Curriculum != "" {
		u.Curriculum = sql.NullString{String: req.Curriculum, Valid: true}
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := s.userRepo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyExists):
			return nil, ErrEmailAlreadyExists
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			return nil, ErrUsernameAlreadyExists
		}
		return nil, err
	}

	// Starting balance goes through the ledger like every other credit, so
	// the balance invariant holds from the first entry.
	if amount := s.freeTokens(ctx); amount > 0 {
		receipt, err := s.ledger.Grant(ctx, u.ID, amount, "signup-bonus")
		if err != nil {
			log.Error().Err(err).Str("user_id", u.ID.String()).Msg("signup bonus grant failed")
		} else {
			u.TokenBalance = receipt.Balance
		}
	}

	return s.generateTokens(ctx, u)
}

// Login authenticates by username or email.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	identity := strings.TrimSpace(req.Identity)

	var u *user.User
	var err error
	if strings.Contains(identity, "@") {
		u, err = s.userRepo.GetByEmail(ctx, normalizeEmail(identity))
	} else {
		u, err = s.userRepo.GetByUsername(ctx, identity)
	}
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, u)
}

// Refresh rotates the refresh token and issues a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.getRefreshToken(ctx, refreshHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	_ = s.deleteRefreshToken(ctx, refreshHash)

	return s.generateTokens(ctx, u)
}

// Logout invalidates refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil // Nothing to logout
	}
	return s.deleteRefreshToken(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u)
	return &resp, nil
}

func (s *Service) freeTokens(ctx context.Context) int {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not read signup bonus amount")
		return 0
	}
	return cfg.FreeTokensPerUser
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Store hash(refresh) in Redis
	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.storeRefreshToken(ctx, refreshHash, u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken, // return raw refresh to client
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

// Redis helpers (handle nil redis gracefully)
func (s *Service) storeRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil // Skip if Redis not configured
	}
	return s.redis.Set(ctx, "refresh:"+tokenHash, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) getRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		// Without Redis, refresh tokens don't work
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.Get(ctx, "refresh:"+tokenHash).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *Service) deleteRefreshToken(ctx context.Context, tokenHash string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+tokenHash).Err()
}
