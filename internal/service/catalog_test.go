package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/silver_admin/internal/events"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/transport"
)

func newCatalog(t *testing.T) (*CatalogService, *events.Recorder) {
	rec := &events.Recorder{}
	return &CatalogService{Repo: newTestRepo(t), Events: rec}, rec
}

func TestCatalogService_RoundTrip(t *testing.T) {
	svc, rec := newCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, transport.ProductForm{
		Name:        "Ring",
		Description: "desc",
		Price:       "100",
		Tag:         "Plata 925",
		ImageFile:   "x.jpg",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ring", got.Name)
	assert.Equal(t, "desc", got.Description)
	assert.EqualValues(t, 100, got.Price)
	assert.Equal(t, "Plata 925", got.Tag)
	assert.Equal(t, "x.jpg", got.ImageFile)

	_, err = svc.Update(ctx, created.ID, transport.ProductPatch{Price: strPtr("150")})
	require.NoError(t, err)

	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 150, got.Price)
	assert.Equal(t, "Ring", got.Name)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, "Plata 925", got.Tag)
	assert.Equal(t, "x.jpg", got.ImageFile)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	evs := rec.Events()
	require.Len(t, evs, 3)
	assert.Equal(t, "product_created", evs[0].Event.(map[string]any)["type"])
	assert.Equal(t, "product_updated", evs[1].Event.(map[string]any)["type"])
	assert.Equal(t, "product_deleted", evs[2].Event.(map[string]any)["type"])
	assert.Equal(t, events.TopicProducts, evs[0].Topic)
}

func TestCatalogService_Create_Defaults(t *testing.T) {
	svc, _ := newCatalog(t)

	prod, err := svc.Create(context.Background(), transport.ProductForm{
		Name:        "Aretes",
		Description: "Aretes colgantes",
		Price:       " 75.50 ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTag, prod.Tag)
	assert.Equal(t, models.DefaultImage, prod.ImageFile)
	assert.InDelta(t, 75.5, prod.Price, 0.0001)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	valid := transport.ProductForm{Name: "n", Description: "d", Price: "1"}

	tests := []struct {
		name  string
		edit  func(f *transport.ProductForm)
		field string
	}{
		{name: "price not a number", edit: func(f *transport.ProductForm) { f.Price = "abc" }, field: "price"},
		{name: "price missing", edit: func(f *transport.ProductForm) { f.Price = "" }, field: "price"},
		{name: "price negative", edit: func(f *transport.ProductForm) { f.Price = "-1" }, field: "price"},
		{name: "price NaN", edit: func(f *transport.ProductForm) { f.Price = "NaN" }, field: "price"},
		{name: "price infinite", edit: func(f *transport.ProductForm) { f.Price = "Inf" }, field: "price"},
		{name: "name missing", edit: func(f *transport.ProductForm) { f.Name = "   " }, field: "name"},
		{name: "description missing", edit: func(f *transport.ProductForm) { f.Description = "" }, field: "description"},
		{name: "tag too long", edit: func(f *transport.ProductForm) { f.Tag = string(make([]byte, 51)) }, field: "tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rec := newCatalog(t)
			ctx := context.Background()

			form := valid
			tt.edit(&form)

			_, err := svc.Create(ctx, form)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			items, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, items)
			assert.Empty(t, rec.Events())
		})
	}
}

func TestCatalogService_Update_ValidationKeepsRecord(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	prod, err := svc.Create(ctx, transport.ProductForm{Name: "n", Description: "d", Price: "10"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, prod.ID, transport.ProductPatch{Name: strPtr("new"), Price: strPtr("abc")})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.Get(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "n", got.Name)
	assert.EqualValues(t, 10, got.Price)
}

func TestCatalogService_UnknownID(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, transport.ProductPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)
}

func TestCatalogService_Page(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, transport.ProductForm{Name: name, Description: "d", Price: "1"})
		require.NoError(t, err)
	}

	items, pager, err := svc.Page(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Name)
	assert.EqualValues(t, 3, pager.Total)
	assert.Equal(t, 2, pager.Pages())
	assert.False(t, pager.HasNext())
}
