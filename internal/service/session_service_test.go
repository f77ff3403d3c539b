package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrplutter/gateway/internal/repository"
)

type failingStore struct{}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("backend unreachable")
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend unreachable")
}

func newTestService() *SessionService {
	return NewSessionService(repository.NewMemoryTTLStore(time.Minute))
}

func TestCreateThenStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = uuid.Parse(session.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.PairingURI, "wc:"+session.ID+"@2?relay-protocol=irn&symKey="))
	assert.Contains(t, session.QRURL, "api.qrserver.com")

	state, err := svc.Status(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, &SessionState{}, state, "fresh session starts with all flags false")
}

func TestStatusUnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Status(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMarkOpenedIsMonotonic(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.MarkOpened(ctx, session.ID))
	require.NoError(t, svc.MarkOpened(ctx, session.ID))

	state, err := svc.Status(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, state.Opened)
	assert.False(t, state.Signed)
	assert.False(t, state.Rejected)
}

func TestResolveFlipsExactlyOneTerminalField(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(ctx, session.ID, false))
	// A second resolution must not flip the other terminal field.
	require.NoError(t, svc.Resolve(ctx, session.ID, true))

	state, err := svc.Status(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, state.Signed)
	assert.True(t, state.Rejected)
}

func TestSessionExpires(t *testing.T) {
	svc := NewSessionService(repository.NewMemoryTTLStore(50 * time.Millisecond))
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	_, err = svc.Status(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound, "expired session reports not found, not a default session")
}

func TestStoreFailureSurfaces(t *testing.T) {
	// Session state fails closed, unlike the rate limiter; dropping session
	// writes silently would corrupt the signing flow.
	svc := NewSessionService(failingStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx)
	assert.Error(t, err)

	_, err = svc.Status(ctx, uuid.NewString())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestPayloadMirrorRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id := uuid.NewString()

	status := PayloadStatus{Opened: true, Signed: true, TxHash: "ABC123"}
	require.NoError(t, svc.MirrorPayload(ctx, id, status))

	mirrored, err := svc.MirroredPayload(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, status, *mirrored)
}

func TestPayloadMirrorAbsent(t *testing.T) {
	svc := newTestService()

	mirrored, err := svc.MirroredPayload(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, mirrored)
}
