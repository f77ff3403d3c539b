package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"xrplutter/gateway/internal/repository"
)

const (
	sessionKeyPrefix = "wc:"
	payloadKeyPrefix = "xumm:"
)

// SessionState tracks a signing session through created -> pending ->
// resolved. opened flips monotonically from false to true; exactly one of
// signed/rejected terminates the session.
type SessionState struct {
	Opened   bool `json:"opened"`
	Signed   bool `json:"signed"`
	Rejected bool `json:"rejected"`
}

type Session struct {
	ID         string       `json:"-"`
	PairingURI string       `json:"pairingUri"`
	QRURL      string       `json:"qrUrl"`
	State      SessionState `json:"state"`
}

// PayloadStatus is the advisory local mirror of a vendor payload. The vendor
// is the system of record; a mirror read must never outrank a live vendor
// query.
type PayloadStatus struct {
	Opened   bool   `json:"opened"`
	Signed   bool   `json:"signed"`
	Rejected bool   `json:"rejected"`
	TxHash   string `json:"txHash,omitempty"`
	TxBlob   string `json:"tx_blob,omitempty"`
}

// SessionService owns the wallet-signing session records in the TTL store.
// Unlike the rate limiter, store failures here surface to the caller:
// silently dropping session state would corrupt the signing flow.
type SessionService struct {
	store repository.TTLStore
}

func NewSessionService(store repository.TTLStore) *SessionService {
	return &SessionService{store: store}
}

// Create assigns a fresh pairing session: random id, WalletConnect-style
// pairing URI, and a QR service URL for the same URI.
func (s *SessionService) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	symKey := strings.ReplaceAll(uuid.NewString(), "-", "")
	pairingURI := fmt.Sprintf("wc:%s@2?relay-protocol=irn&symKey=%s", id, symKey)

	session := &Session{
		ID:         id,
		PairingURI: pairingURI,
		QRURL:      "https://api.qrserver.com/v1/create-qr-code/?data=" + url.QueryEscape(pairingURI) + "&size=200x200",
	}
	if err := s.writeSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Status reads a session's state by id. Missing, expired, or unparseable
// records all report as not found rather than a default-initialized session.
func (s *SessionService) Status(ctx context.Context, id string) (*SessionState, error) {
	session, err := s.readSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session.State, nil
}

// MarkOpened flips opened from false to true. Idempotent; never un-opens.
func (s *SessionService) MarkOpened(ctx context.Context, id string) error {
	session, err := s.readSession(ctx, id)
	if err != nil {
		return err
	}
	if session.State.Opened {
		return nil
	}
	session.State.Opened = true
	return s.writeSession(ctx, session)
}

// Resolve terminates a session by flipping exactly one terminal field. A
// session already resolved stays as it is.
func (s *SessionService) Resolve(ctx context.Context, id string, signed bool) error {
	session, err := s.readSession(ctx, id)
	if err != nil {
		return err
	}
	if session.State.Signed || session.State.Rejected {
		return nil
	}
	if signed {
		session.State.Signed = true
	} else {
		session.State.Rejected = true
	}
	return s.writeSession(ctx, session)
}

// MirrorPayload records the last observed vendor payload status. Advisory
// only; callers tolerate mirror failures.
func (s *SessionService) MirrorPayload(ctx context.Context, id string, status PayloadStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode payload mirror: %w", err)
	}
	if err := s.store.Set(ctx, payloadKeyPrefix+id, raw); err != nil {
		return fmt.Errorf("write payload mirror: %w", err)
	}
	return nil
}

// MirroredPayload returns the advisory mirror for a payload id, or nil when
// no mirror exists.
func (s *SessionService) MirroredPayload(ctx context.Context, id string) (*PayloadStatus, error) {
	raw, err := s.store.Get(ctx, payloadKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("read payload mirror: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	status := &PayloadStatus{}
	if err := json.Unmarshal(raw, status); err != nil {
		return nil, nil
	}
	return status, nil
}

func (s *SessionService) writeSession(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+session.ID, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SessionService) readSession(ctx context.Context, id string) (*Session, error) {
	raw, err := s.store.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if raw == nil {
		return nil, ErrSessionNotFound
	}
	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, ErrSessionNotFound
	}
	session.ID = id
	return session, nil
}
