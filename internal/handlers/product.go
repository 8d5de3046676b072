package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/service"
	"github.com/Skotchmaster/silver_admin/internal/transport"
	"github.com/Skotchmaster/silver_admin/internal/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
	Flash   *flash.Store
}

func formOf(p *models.Product) transport.ProductForm {
	return transport.ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Tag:         p.Tag,
		ImageFile:   p.ImageFile,
	}
}

func (h *ProductHandler) Index(c echo.Context) error {
	items, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list_products", err)
	}
	return render(c, h.Flash, http.StatusOK, "index.html", Page{Title: "Catalog", Products: items})
}

func parseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) AdminList(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	items, pager, err := h.Catalog.Page(c.Request().Context(), page, size)
	if err != nil {
		return internalError(c, "list_products", err)
	}
	return render(c, h.Flash, http.StatusOK, "crud/list.html", Page{Title: "Products", Products: items, Pager: &pager})
}

func (h *ProductHandler) CreateForm(c echo.Context) error {
	return render(c, h.Flash, http.StatusOK, "crud/form.html", Page{
		Title:  "New product",
		Action: "/admin/create",
		Form:   transport.ProductForm{Tag: models.DefaultTag, ImageFile: models.DefaultImage},
	})
}

func (h *ProductHandler) Create(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := transport.ProductFormFrom(params)

	prod, err := h.Catalog.Create(c.Request().Context(), form)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return render(c, h.Flash, http.StatusUnprocessableEntity, "crud/form.html", Page{
				Title:  "New product",
				Action: "/admin/create",
				Form:   form,
				Error:  ve.Message,
			})
		}
		return internalError(c, "create_product", err)
	}

	return redirect(c, h.Flash, flash.Success, "Product \""+prod.Name+"\" created successfully!", "/admin")
}

func (h *ProductHandler) UpdateForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	prod, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return internalError(c, "get_product", err)
	}
	return render(c, h.Flash, http.StatusOK, "crud/form.html", Page{
		Title:  "Edit product",
		Action: "/admin/update/" + strconv.FormatUint(uint64(id), 10),
		Form:   formOf(prod),
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()

	prod, err := h.Catalog.Update(ctx, id, transport.ProductPatchFrom(params))
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.As(err, &ve):
			current, gerr := h.Catalog.Get(ctx, id)
			if gerr != nil {
				if errors.Is(gerr, service.ErrNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Product not found")
				}
				return internalError(c, "get_product", gerr)
			}
			return render(c, h.Flash, http.StatusUnprocessableEntity, "crud/form.html", Page{
				Title:  "Edit product",
				Action: "/admin/update/" + strconv.FormatUint(uint64(id), 10),
				Form:   overlay(formOf(current), transport.ProductPatchFrom(params)),
				Error:  ve.Message,
			})
		}
		return internalError(c, "update_product", err)
	}

	return redirect(c, h.Flash, flash.Success, "Product \""+prod.Name+"\" updated successfully!", "/admin")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return internalError(c, "delete_product", err)
	}
	return redirect(c, h.Flash, flash.Success, "Product deleted successfully!", "/admin")
}

// overlay shows the submitted values over the stored ones when re-rendering.
func overlay(f transport.ProductForm, p transport.ProductPatch) transport.ProductForm {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Tag != nil {
		f.Tag = *p.Tag
	}
	if p.ImageFile != nil {
		f.ImageFile = *p.ImageFile
	}
	return f
}
