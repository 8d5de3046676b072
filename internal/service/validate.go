package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/repo"
	"github.com/Skotchmaster/silver_admin/internal/transport"
)

var validate = validator.New()

// bcrypt refuses longer inputs.
const maxPasswordBytes = 72

var registerErrors = map[string]*ValidationError{
	"Handle.required": ErrHandleRequired,
	"Handle.max":      ErrHandleTooLong,
	"Password.min":    ErrPasswordTooShort,
	"Confirm.eqfield": ErrPasswordMismatch,
}

func validateRegister(form *transport.RegisterForm) error {
	err := validate.Struct(form)
	if err == nil {
		if len(form.Password) > maxPasswordBytes {
			return ErrPasswordTooLong
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	if ve, ok := registerErrors[fe.StructField()+"."+fe.Tag()]; ok {
		return ve
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Message: "Invalid " + strings.ToLower(fe.Field()) + "."}
}

type productRule struct {
	field string
	label string
	tag   string
}

var (
	ruleName        = productRule{field: "name", label: "Name", tag: "required,max=100"}
	ruleDescription = productRule{field: "description", label: "Description", tag: "required"}
	rulePrice       = productRule{field: "price", label: "Price", tag: "required"}
	ruleTag         = productRule{field: "tag", label: "Tag", tag: "max=50"}
	ruleImage       = productRule{field: "image_file", label: "Image", tag: "max=100"}
)

func (r productRule) check(value string) error {
	err := validate.Var(value, r.tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: r.field, Message: r.label + " is required."}
	case "max":
		return &ValidationError{Field: r.field, Message: fmt.Sprintf("%s must be at most %s characters.", r.label, fe.Param())}
	default:
		return &ValidationError{Field: r.field, Message: "Invalid " + strings.ToLower(r.label) + "."}
	}
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &ValidationError{Field: "price", Message: "Price must be a number."}
	}
	if price < 0 {
		return 0, &ValidationError{Field: "price", Message: "Price cannot be negative."}
	}
	return price, nil
}

// productPatch validates the present fields of p and converts them to
// repository columns. Blank tag or image fall back to the defaults.
func productPatch(p transport.ProductPatch) (repo.ProductPatch, error) {
	var out repo.ProductPatch

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := ruleName.check(name); err != nil {
			return out, err
		}
		out.Name = &name
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if err := ruleDescription.check(desc); err != nil {
			return out, err
		}
		out.Description = &desc
	}
	if p.Price != nil {
		raw := strings.TrimSpace(*p.Price)
		if err := rulePrice.check(raw); err != nil {
			return out, err
		}
		price, err := parsePrice(raw)
		if err != nil {
			return out, err
		}
		out.Price = &price
	}
	if p.Tag != nil {
		tag := strings.TrimSpace(*p.Tag)
		if err := ruleTag.check(tag); err != nil {
			return out, err
		}
		if tag == "" {
			tag = models.DefaultTag
		}
		out.Tag = &tag
	}
	if p.ImageFile != nil {
		img := strings.TrimSpace(*p.ImageFile)
		if err := ruleImage.check(img); err != nil {
			return out, err
		}
		if img == "" {
			img = models.DefaultImage
		}
		out.ImageFile = &img
	}

	return out, nil
}
