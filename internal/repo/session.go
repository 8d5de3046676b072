package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/silver_admin/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return translate(r.DB.WithContext(ctx).Create(s).Error)
}

// FindLiveSession returns the session only if it is neither revoked nor idle
// past its expiry.
func (r *GormRepo) FindLiveSession(ctx context.Context, jti string, now time.Time) (*models.Session, error) {
	var s models.Session
	err := r.DB.WithContext(ctx).
		Where("jti = ? AND revoked = ? AND expires_at > ?", jti, false, now).
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *GormRepo) TouchSession(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("jti = ?", jti).
		Update("expires_at", expiresAt).Error
}

func (r *GormRepo) RevokeSession(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

func (r *GormRepo) RevokeAccountSessions(ctx context.Context, accountID uint) error {
	return r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Update("revoked", true).Error
}

// PurgeSessions drops rows that can no longer resolve.
func (r *GormRepo) PurgeSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("revoked = ? OR expires_at <= ?", true, now).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
