package transport

import "net/url"

// ProductForm is the create form; every field is taken as submitted.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Tag         string
	ImageFile   string
}

// ProductPatch holds only the fields present in an update form.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *string
	Tag         *string
	ImageFile   *string
}

func (f ProductForm) Patch() ProductPatch {
	return ProductPatch{
		Name:        &f.Name,
		Description: &f.Description,
		Price:       &f.Price,
		Tag:         &f.Tag,
		ImageFile:   &f.ImageFile,
	}
}

type RegisterForm struct {
	Handle   string `validate:"required,max=64"`
	Password string `validate:"min=6"`
	Confirm  string `validate:"eqfield=Password"`
}

type LoginForm struct {
	Handle   string
	Password string
}

// lookup returns the first of keys present in v. Later keys are aliases.
func lookup(v url.Values, keys ...string) (string, bool) {
	for _, k := range keys {
		if vals, ok := v[k]; ok && len(vals) > 0 {
			return vals[0], true
		}
	}
	return "", false
}

func optional(v url.Values, keys ...string) *string {
	s, ok := lookup(v, keys...)
	if !ok {
		return nil
	}
	return &s
}

func ProductFormFrom(v url.Values) ProductForm {
	var f ProductForm
	f.Name, _ = lookup(v, "name")
	f.Description, _ = lookup(v, "description")
	f.Price, _ = lookup(v, "price")
	f.Tag, _ = lookup(v, "tag")
	f.ImageFile, _ = lookup(v, "image_file", "image")
	return f
}

func ProductPatchFrom(v url.Values) ProductPatch {
	return ProductPatch{
		Name:        optional(v, "name"),
		Description: optional(v, "description"),
		Price:       optional(v, "price"),
		Tag:         optional(v, "tag"),
		ImageFile:   optional(v, "image_file", "image"),
	}
}

// RegisterFormFrom treats a missing confirm field as matching the password.
func RegisterFormFrom(v url.Values) RegisterForm {
	var f RegisterForm
	f.Handle, _ = lookup(v, "username", "handle")
	f.Password, _ = lookup(v, "password")
	confirm, ok := lookup(v, "confirm")
	if !ok {
		confirm = f.Password
	}
	f.Confirm = confirm
	return f
}

func LoginFormFrom(v url.Values) LoginForm {
	var f LoginForm
	f.Handle, _ = lookup(v, "username", "handle")
	f.Password, _ = lookup(v, "password")
	return f
}
