package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type ProfileChecker interface {
	ProfileExists(ctx context.Context, userID string) (bool, error)
}

// Verifier is the AuthoritativeSessionVerifier. It trusts nothing the edge
// gate decided and re-reads the token itself.
type Verifier struct {
	reader   OptimisticSessionReader
	users    UserLookup
	profiles ProfileChecker
	logger   logging.Logger
}

func NewVerifier(reader OptimisticSessionReader, users UserLookup, profiles ProfileChecker, logger logging.Logger) *Verifier {
	return &Verifier{reader: reader, users: users, profiles: profiles, logger: logger}
}

// VerifySession allows any request whose token is valid and whose user
// still exists.
func (v *Verifier) VerifySession(ctx context.Context, r *http.Request) (Decision, error) {
	claims, ok := v.reader.Read(r)
	if !ok {
		return DenyRedirect{Target: common.LoginPath}, nil
	}

	user, err := v.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			v.logger.Info(ctx, "session for unknown user", "user_id", claims.Subject)
			return DenyRedirect{Target: common.LoginPath}, nil
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}

	return Allowed{Identity: Identity{UserID: user.ID, Email: user.Email}}, nil
}

// VerifySessionWithProfile additionally requires a completed profile and
// sends users without one to onboarding.
func (v *Verifier) VerifySessionWithProfile(ctx context.Context, r *http.Request) (Decision, error) {
	d, err := v.VerifySession(ctx, r)
	if err != nil {
		return nil, err
	}
	allowed, ok := d.(Allowed)
	if !ok {
		return d, nil
	}

	exists, err := v.profiles.ProfileExists(ctx, allowed.Identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("verify profile: %w", err)
	}
	if !exists {
		return DenyRedirect{Target: common.OnboardingPath}, nil
	}
	return allowed, nil
}
