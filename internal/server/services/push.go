package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/models"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type PushSubscriptionInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// PushService records Web Push subscriptions. Sending is done elsewhere.
type PushService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPushService(db *sql.DB, m repomanager.RepositoryManager) *PushService {
	return &PushService{db: db, repomanager: m, now: time.Now}
}

func (s *PushService) Subscribe(ctx context.Context, userID string, in PushSubscriptionInput) error {
	u, err := url.Parse(in.Endpoint)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: endpoint must be an https URL", common.ErrorValidation)
	}
	if in.P256dh == "" || in.Auth == "" {
		return fmt.Errorf("%w: subscription keys are required", common.ErrorValidation)
	}

	return s.repomanager.PushSubscriptions(s.db).Upsert(ctx, &models.PushSubscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  in.Endpoint,
		P256dh:    in.P256dh,
		Auth:      in.Auth,
		CreatedAt: s.now().UTC(),
	})
}

// Unsubscribe returns common.ErrorNotFound when the user has no such endpoint.
func (s *PushService) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	return s.repomanager.PushSubscriptions(s.db).Delete(ctx, userID, endpoint)
}

func (s *PushService) List(ctx context.Context, userID string) ([]models.PushSubscription, error) {
	return s.repomanager.PushSubscriptions(s.db).ListByUser(ctx, userID)
}
