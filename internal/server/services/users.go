// Package services contains server-side business logic. UserService is the
// credential authenticator: it registers users, checks email and password,
// issues session tokens and runs the password reset flow.
package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/dbx"
	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/dmitrijs2005/jablog/internal/server/config"
	"github.com/dmitrijs2005/jablog/internal/server/models"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLen = 72

	resetTokenBytes = 32
	resetPath       = "/reset-password"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Codec
	mailer      Mailer
	logger      logging.Logger

	resetTTL time.Duration
	baseURL  string
	hashCost int
	// compared against when the email is unknown so both paths cost a bcrypt run
	dummyHash []byte
	now       func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Codec, mailer Mailer, logger logging.Logger, cfg *config.Config) (*UserService, error) {
	return newUserService(db, m, tokens, mailer, logger, cfg, bcrypt.DefaultCost)
}

func newUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Codec, mailer Mailer, logger logging.Logger, cfg *config.Config, cost int) (*UserService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		mailer:      mailer,
		logger:      logger,
		resetTTL:    cfg.ResetTokenValidityDuration,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		hashCost:    cost,
		dummyHash:   dummy,
		now:         time.Now,
	}, nil
}

// Authorize checks email and password. Unknown email and wrong password both
// yield common.ErrInvalidCredentials and take comparable time.
func (s *UserService) Authorize(ctx context.Context, email, password string) (*auth.Identity, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return &auth.Identity{UserID: user.ID, Email: user.Email}, nil
}

// Login authorizes and issues a session token together with its expiry.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, *auth.Identity, error) {
	id, err := s.Authorize(ctx, email, password)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	token, expires, err := s.tokens.Issue(*id)
	if err != nil {
		s.logger.Error(ctx, "issue session token", "error", err)
		return "", time.Time{}, nil, common.ErrorInternal
	}
	return token, expires, id, nil
}

// Register creates a user. A taken email yields common.ErrorAlreadyExists,
// bad input a wrapped common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// GetUserByID backs the authoritative session check.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetUserByID(ctx, id)
}

// RequestPasswordReset mails a reset link when email belongs to a user. It
// returns nil for unknown emails so callers cannot tell the difference.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = common.NormalizeEmail(email)
	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "password reset for unknown email")
			return nil
		}
		return fmt.Errorf("error searching user: %w", err)
	}

	raw, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return common.ErrorInternal
	}

	token := &models.ResetToken{
		TokenHash: hashResetToken(raw),
		UserID:    user.ID,
		Expires:   s.now().UTC().Add(s.resetTTL),
	}
	if err := s.repomanager.ResetTokens(s.db).Create(ctx, token); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(raw)); err != nil {
		return fmt.Errorf("error sending reset mail: %w", err)
	}
	return nil
}

// ResetPassword replaces the password of the token's owner and drops every
// pending token of that user.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if rawToken == "" {
		return common.ErrResetTokenInvalid
	}

	token, err := s.repomanager.ResetTokens(s.db).Find(ctx, hashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrResetTokenInvalid
		}
		return fmt.Errorf("error searching reset token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return common.ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return common.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePasswordHash(ctx, token.UserID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if err := s.repomanager.ResetTokens(tx).DeleteForUser(ctx, token.UserID); err != nil {
			return fmt.Errorf("error deleting reset tokens: %w", err)
		}
		return nil
	})
}

func (s *UserService) resetLink(raw string) string {
	q := url.Values{}
	q.Set("token", raw)
	return s.baseURL + resetPath + "?" + q.Encode()
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: email address is not valid", common.ErrorValidation)
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case len(password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLen)
	case len(password) > maxPasswordLen:
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxPasswordLen)
	}
	return nil
}
