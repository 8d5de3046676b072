package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/silver_admin/internal/events"
	"github.com/Skotchmaster/silver_admin/internal/hash"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/repo"
	"github.com/Skotchmaster/silver_admin/internal/transport"
)

// dummyHash keeps the unknown-handle path as slow as a wrong password.
var dummyHash, _ = hash.HashPassword("not-a-real-password")

type AccountService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *AccountService) Get(ctx context.Context, id uint) (*models.Account, error) {
	return s.Repo.GetAccount(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.Repo.ListAccounts(ctx)
}

func (s *AccountService) Register(ctx context.Context, form transport.RegisterForm) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	form.Handle = strings.TrimSpace(form.Handle)
	if err := validateRegister(&form); err != nil {
		l.Warn("register_rejected", "reason", err.Error())
		return nil, err
	}

	pwHash, err := hash.HashPassword(form.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	acc, err := s.Repo.CreateAccount(ctx, &models.Account{
		Handle:       form.Handle,
		PasswordHash: pwHash,
	})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			l.Warn("register_rejected", "status", 409, "reason", "handle already exists")
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicAccounts, acc.ID, map[string]any{
		"type":      "account_registered",
		"accountID": acc.ID,
		"handle":    acc.Handle,
	})
	return acc, nil
}

func (s *AccountService) Authenticate(ctx context.Context, form transport.LoginForm) (*models.Account, error) {
	handle := strings.TrimSpace(form.Handle)
	if handle == "" || form.Password == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := s.Repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			hash.CheckPassword(dummyHash, form.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(acc.PasswordHash, form.Password) {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

func (s *AccountService) SetRole(ctx context.Context, actorID, id uint, isAdmin bool) (*models.Account, error) {
	if actorID == id && !isAdmin {
		return nil, ErrSelfDemote
	}

	acc, err := s.Repo.SetRole(ctx, id, isAdmin)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicAccounts, acc.ID, map[string]any{
		"type":      "account_role_changed",
		"accountID": acc.ID,
		"isAdmin":   acc.IsAdmin,
	})
	return acc, nil
}

// Delete removes the account and revokes its sessions.
func (s *AccountService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfDelete
	}

	if err := s.Repo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.RevokeAccountSessions(ctx, id); err != nil {
		logging.FromContext(ctx).Error("revoke_sessions_error", "account_id", id, "error", err)
	}

	publish(ctx, s.Events, events.TopicAccounts, id, map[string]any{
		"type":      "account_deleted",
		"accountID": id,
	})
	return nil
}
