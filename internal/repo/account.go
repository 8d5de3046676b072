package repo

import (
	"context"

	"github.com/Skotchmaster/silver_admin/internal/models"
)

func (r *GormRepo) FindByHandle(ctx context.Context, handle string) (*models.Account, error) {
	var acc models.Account
	if err := r.DB.WithContext(ctx).Where("handle = ?", handle).First(&acc).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (r *GormRepo) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	if err := r.DB.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (r *GormRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	items := []models.Account{}
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountAccounts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Account{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CreateAccount relies on the unique index on handle; a duplicate yields
// ErrConflict.
func (r *GormRepo) CreateAccount(ctx context.Context, acc *models.Account) (*models.Account, error) {
	if err := r.DB.WithContext(ctx).Create(acc).Error; err != nil {
		return nil, translate(err)
	}
	return acc, nil
}

func (r *GormRepo) SetRole(ctx context.Context, id uint, isAdmin bool) (*models.Account, error) {
	acc, err := r.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(acc).Update("is_admin", isAdmin).Error; err != nil {
		return nil, err
	}
	acc.IsAdmin = isAdmin
	return acc, nil
}

func (r *GormRepo) DeleteAccount(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Account{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
