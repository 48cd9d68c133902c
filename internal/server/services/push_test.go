package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushService(t *testing.T) {
	ctx := context.Background()
	db, m := newTestStore(t)
	users := newTestUserService(t, db, m, &capturingMailer{})
	s := NewPushService(db, m)

	u, err := users.Register(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	in := PushSubscriptionInput{Endpoint: "https://push.example/abc", P256dh: "key", Auth: "secret"}
	require.NoError(t, s.Subscribe(ctx, u.ID, in))
	// resubscribing the same endpoint is fine
	require.NoError(t, s.Subscribe(ctx, u.ID, in))

	subs, err := s.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	require.NoError(t, s.Unsubscribe(ctx, u.ID, in.Endpoint))
	assert.ErrorIs(t, s.Unsubscribe(ctx, u.ID, in.Endpoint), common.ErrorNotFound)
}

func TestPushService_Validation(t *testing.T) {
	db, m := newTestStore(t)
	s := NewPushService(db, m)

	for _, in := range []PushSubscriptionInput{
		{Endpoint: "http://push.example/abc", P256dh: "k", Auth: "a"},
		{Endpoint: "not a url", P256dh: "k", Auth: "a"},
		{Endpoint: "https://push.example/abc"},
	} {
		assert.ErrorIs(t, s.Subscribe(context.Background(), "u-1", in), common.ErrorValidation, "%+v", in)
	}
}
