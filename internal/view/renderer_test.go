package view

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identity struct {
	AccountID uint
	Handle    string
	IsAdmin   bool
}

func (i identity) Authenticated() bool { return i.AccountID != 0 }

type product struct {
	ID          uint
	Name        string
	Description string
	Price       float64
	Tag         string
	ImageFile   string
}

type message struct{ Category, Text string }

type page struct {
	Title     string
	Identity  identity
	Flashes   []message
	CSRFToken string
	Error     string
	Products  []product
	Pager     any
}

func TestRenderer_ProjectTemplates(t *testing.T) {
	r, err := New(filepath.Join("..", "..", "web", "templates"))
	require.NoError(t, err)

	for _, name := range []string{"index.html", "login.html", "register.html", "users.html", "crud/list.html", "crud/form.html"} {
		assert.Contains(t, r.pages, name)
	}

	var buf bytes.Buffer
	err = r.Render(&buf, "crud/list.html", page{
		Title:     "Products",
		Identity:  identity{AccountID: 1, Handle: "admin", IsAdmin: true},
		Flashes:   []message{{Category: "success", Text: "Saved <ok>"}},
		CSRFToken: "tok123",
		Products:  []product{{ID: 4, Name: "Anillo Luna", Price: 100, Tag: "Plata 925", ImageFile: "a.jpg"}},
	}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alert-success")
	assert.Contains(t, out, "Saved &lt;ok&gt;")
	assert.Contains(t, out, "Anillo Luna")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, `/admin/delete/4`)
	assert.Contains(t, out, "tok123")
	assert.Contains(t, out, "Log out")
}

func TestRenderer_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.html"), []byte(`{{define "layout"}}[{{template "content" .}}]{{end}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"), []byte(`{{define "content"}}hi {{.}}{{end}}`), 0o644))

	r, err := New(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "hello.html", "there", nil))
	assert.Equal(t, "[hi there]", buf.String())

	assert.Error(t, r.Render(&buf, "missing.html", nil, nil))

	_, err = New(t.TempDir())
	assert.Error(t, err)
}
