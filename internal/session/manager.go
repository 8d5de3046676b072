package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/repo"
	"github.com/Skotchmaster/silver_admin/internal/tokens"
)

var ErrNoSession = errors.New("no active session")

// Manager issues signed session tokens backed by rows in the sessions table.
// A session lives at most MaxAge and dies earlier after IdleTimeout without use.
type Manager struct {
	Repo        *repo.GormRepo
	Secret      []byte
	IdleTimeout time.Duration
	MaxAge      time.Duration
	Now         func() time.Time
}

type Issued struct {
	Token     string
	ExpiresAt time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Manager) Create(ctx context.Context, accountID uint) (Issued, error) {
	now := m.now()
	jti := uuid.NewString()
	absolute := now.Add(m.MaxAge)

	token, err := tokens.SignSession(accountID, jti, now, absolute, m.Secret)
	if err != nil {
		return Issued{}, err
	}

	err = m.Repo.CreateSession(ctx, &models.Session{
		JTI:       jti,
		AccountID: accountID,
		ExpiresAt: m.idleDeadline(now, absolute),
	})
	if err != nil {
		return Issued{}, err
	}

	return Issued{Token: token, ExpiresAt: absolute}, nil
}

// Resolve returns the account behind a live token and pushes its idle
// deadline forward.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	claims, err := tokens.SessionClaimsFromToken(token, m.Secret)
	if err != nil || claims.ExpiresAt == nil {
		return 0, ErrNoSession
	}
	accountID, err := claims.AccountID()
	if err != nil {
		return 0, ErrNoSession
	}

	now := m.now()
	s, err := m.Repo.FindLiveSession(ctx, claims.ID, now)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrNoSession
		}
		return 0, err
	}
	if s.AccountID != accountID {
		return 0, ErrNoSession
	}

	if err := m.Repo.TouchSession(ctx, s.JTI, m.idleDeadline(now, claims.ExpiresAt.Time)); err != nil {
		return 0, err
	}
	return accountID, nil
}

// Destroy revokes the session behind token. Unparseable tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := tokens.SessionClaimsFromToken(token, m.Secret)
	if err != nil {
		return nil
	}
	return m.Repo.RevokeSession(ctx, claims.ID)
}

func (m *Manager) DestroyAll(ctx context.Context, accountID uint) error {
	return m.Repo.RevokeAccountSessions(ctx, accountID)
}

func (m *Manager) idleDeadline(now, absolute time.Time) time.Time {
	d := now.Add(m.IdleTimeout)
	if d.After(absolute) {
		return absolute.UTC()
	}
	return d
}
