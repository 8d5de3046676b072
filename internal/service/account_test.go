package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/silver_admin/internal/events"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/transport"
)

func newAccounts(t *testing.T) (*AccountService, *events.Recorder) {
	rec := &events.Recorder{}
	return &AccountService{Repo: newTestRepo(t), Events: rec}, rec
}

func register(t *testing.T, svc *AccountService, handle string) *models.Account {
	t.Helper()
	acc, err := svc.Register(context.Background(), transport.RegisterForm{
		Handle: handle, Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
	return acc
}

func TestAccountService_Register(t *testing.T) {
	svc, rec := newAccounts(t)
	ctx := context.Background()

	acc := register(t, svc, "  lucia ")
	assert.Equal(t, "lucia", acc.Handle)
	assert.False(t, acc.IsAdmin)
	assert.NotEqual(t, "secret1", acc.PasswordHash)

	found, err := svc.Repo.FindByHandle(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, "lucia", found.Handle)
	assert.False(t, found.IsAdmin)

	require.Len(t, rec.Events(), 1)
	assert.Equal(t, events.TopicAccounts, rec.Events()[0].Topic)
}

func TestAccountService_Register_Conflict(t *testing.T) {
	svc, _ := newAccounts(t)
	ctx := context.Background()

	register(t, svc, "lucia")

	_, err := svc.Register(ctx, transport.RegisterForm{Handle: "lucia", Password: "another", Confirm: "another"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	n, err := svc.Repo.CountAccounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAccountService_Register_Validation(t *testing.T) {
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name string
		form transport.RegisterForm
		want error
	}{
		{name: "empty handle", form: transport.RegisterForm{Handle: " ", Password: "secret1", Confirm: "secret1"}, want: ErrHandleRequired},
		{name: "long handle", form: transport.RegisterForm{Handle: string(long), Password: "secret1", Confirm: "secret1"}, want: ErrHandleTooLong},
		{name: "short password", form: transport.RegisterForm{Handle: "ana", Password: "12345", Confirm: "12345"}, want: ErrPasswordTooShort},
		{name: "empty password", form: transport.RegisterForm{Handle: "ana", Password: "", Confirm: ""}, want: ErrPasswordTooShort},
		{name: "password over 72 bytes", form: transport.RegisterForm{Handle: "ana", Password: strings.Repeat("a", 80), Confirm: strings.Repeat("a", 80)}, want: ErrPasswordTooLong},
		{name: "multibyte password over 72 bytes", form: transport.RegisterForm{Handle: "ana", Password: strings.Repeat("ñ", 40), Confirm: strings.Repeat("ñ", 40)}, want: ErrPasswordTooLong},
		{name: "mismatch", form: transport.RegisterForm{Handle: "ana", Password: "secret1", Confirm: "secret2"}, want: ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAccounts(t)
			ctx := context.Background()

			_, err := svc.Register(ctx, tt.form)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)

			n, err := svc.Repo.CountAccounts(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	svc, _ := newAccounts(t)
	ctx := context.Background()
	acc := register(t, svc, "pedro")

	got, err := svc.Authenticate(ctx, transport.LoginForm{Handle: "pedro", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = svc.Authenticate(ctx, transport.LoginForm{Handle: "pedro", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, transport.LoginForm{Handle: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, transport.LoginForm{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_SetRole(t *testing.T) {
	svc, _ := newAccounts(t)
	ctx := context.Background()
	admin := register(t, svc, "admin")
	user := register(t, svc, "user")

	granted, err := svc.SetRole(ctx, admin.ID, user.ID, true)
	require.NoError(t, err)
	assert.True(t, granted.IsAdmin)

	revoked, err := svc.SetRole(ctx, admin.ID, user.ID, false)
	require.NoError(t, err)
	assert.False(t, revoked.IsAdmin)

	_, err = svc.SetRole(ctx, admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, ErrSelfDemote)

	_, err = svc.SetRole(ctx, admin.ID, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountService_Delete(t *testing.T) {
	svc, _ := newAccounts(t)
	ctx := context.Background()
	admin := register(t, svc, "admin")
	user := register(t, svc, "user")

	require.NoError(t, svc.Repo.CreateSession(ctx, &models.Session{JTI: "u1", AccountID: user.ID, ExpiresAt: farFuture()}))

	err := svc.Delete(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)
	n, err := svc.Repo.CountAccounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, svc.Delete(ctx, admin.ID, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Repo.FindLiveSession(ctx, "u1", now())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, user.ID), ErrNotFound)
}

func TestAccountService_Register_PasswordAtByteLimit(t *testing.T) {
	svc, _ := newAccounts(t)
	ctx := context.Background()
	pw := strings.Repeat("a", 72)

	_, err := svc.Register(ctx, transport.RegisterForm{Handle: "ana", Password: pw, Confirm: pw})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, transport.LoginForm{Handle: "ana", Password: pw})
	require.NoError(t, err)
}
