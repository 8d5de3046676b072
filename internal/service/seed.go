package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/silver_admin/internal/hash"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/repo"
)

var SampleProducts = []models.Product{
	{
		Name:        "Anillo Luna",
		Description: "Anillo de plata 925 con acabado pulido y piedra lunar.",
		Price:       100,
		Tag:         models.DefaultTag,
		ImageFile:   "anillo-luna.jpg",
	},
	{
		Name:        "Collar Estrella",
		Description: "Cadena fina con dije de estrella en plata 925.",
		Price:       250,
		Tag:         models.DefaultTag,
		ImageFile:   "collar-estrella.jpg",
	},
	{
		Name:        "Pulsera Trenzada",
		Description: "Pulsera trenzada a mano, cierre de mosquetón.",
		Price:       180,
		Tag:         models.DefaultTag,
		ImageFile:   models.DefaultImage,
	},
}

type Seeder struct {
	Repo          *repo.GormRepo
	AdminHandle   string
	AdminPassword string
}

// Seed is safe to run on every start.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.ensureAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "seed.admin", "handle", s.AdminHandle)

	acc, err := s.Repo.FindByHandle(ctx, s.AdminHandle)
	switch {
	case err == nil:
		if acc.IsAdmin {
			return nil
		}
		if _, err := s.Repo.SetRole(ctx, acc.ID, true); err != nil {
			return err
		}
		l.Info("admin_promoted")
		return nil
	case !errors.Is(err, repo.ErrNotFound):
		return err
	}

	if len(s.AdminPassword) < 6 {
		l.Warn("admin_password_weak", "reason", "shorter than 6 characters")
	}
	pwHash, err := hash.HashPassword(s.AdminPassword)
	if err != nil {
		return err
	}

	_, err = s.Repo.CreateAccount(ctx, &models.Account{
		Handle:       s.AdminHandle,
		PasswordHash: pwHash,
		IsAdmin:      true,
	})
	if errors.Is(err, repo.ErrConflict) {
		// another instance created it between our lookup and insert
		return s.ensureAdmin(ctx)
	}
	if err != nil {
		return err
	}
	l.Info("admin_created")
	return nil
}

func (s *Seeder) ensureCatalog(ctx context.Context) error {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	for _, p := range SampleProducts {
		p := p
		if _, err := s.Repo.CreateProduct(ctx, &p); err != nil {
			return err
		}
	}
	logging.FromContext(ctx).Info("catalog_seeded", "count", len(SampleProducts))
	return nil
}
