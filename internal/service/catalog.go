package service

import (
	"context"

	"github.com/Skotchmaster/silver_admin/internal/events"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/repo"
	"github.com/Skotchmaster/silver_admin/internal/transport"
	"github.com/Skotchmaster/silver_admin/internal/util"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// Page returns one page of the catalog in creation order.
func (s *CatalogService) Page(ctx context.Context, page, size int) ([]models.Product, util.Pager, error) {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, util.Pager{}, err
	}
	pager := util.NewPager(page, size, total)
	offset, limit := util.Calculate(pager.Page, pager.Size)

	items, err := s.Repo.ListProductsPage(ctx, offset, limit)
	if err != nil {
		return nil, util.Pager{}, err
	}
	return items, pager, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, form transport.ProductForm) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	patch, err := productPatch(form.Patch())
	if err != nil {
		l.Warn("create_product_rejected", "reason", err.Error())
		return nil, err
	}

	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Name:        *patch.Name,
		Description: *patch.Description,
		Price:       *patch.Price,
		Tag:         *patch.Tag,
		ImageFile:   *patch.ImageFile,
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicProducts, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, p transport.ProductPatch) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "product_id", id)

	patch, err := productPatch(p)
	if err != nil {
		l.Warn("update_product_rejected", "reason", err.Error())
		return nil, err
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicProducts, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicProducts, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}
