package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(e *echo.Echo, cookies []*http.Cookie, fn func(c echo.Context)) []*http.Cookie {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	fn(e.NewContext(req, rec))

	// a browser keeps only the last Set-Cookie for a name
	latest := map[string]*http.Cookie{}
	var names []string
	for _, ck := range rec.Result().Cookies() {
		if _, seen := latest[ck.Name]; !seen {
			names = append(names, ck.Name)
		}
		latest[ck.Name] = ck
	}
	out := make([]*http.Cookie, 0, len(names))
	for _, n := range names {
		out = append(out, latest[n])
	}
	return out
}

func TestStore_ShownOnce(t *testing.T) {
	e := echo.New()
	s := NewStore([]byte("flash-secret"), false)

	jar := roundTrip(e, nil, func(c echo.Context) {
		require.NoError(t, s.Add(c, Success, "Product created successfully!"))
		require.NoError(t, s.Add(c, Info, "second"))
	})
	require.Len(t, jar, 1)

	var got []Message
	next := roundTrip(e, jar, func(c echo.Context) { got = s.Pop(c) })
	assert.Equal(t, []Message{
		{Category: Success, Text: "Product created successfully!"},
		{Category: Info, Text: "second"},
	}, got)

	roundTrip(e, next, func(c echo.Context) { got = s.Pop(c) })
	assert.Empty(t, got)
}

func TestStore_IgnoresForeignCookie(t *testing.T) {
	e := echo.New()
	s := NewStore([]byte("flash-secret"), false)
	other := NewStore([]byte("another-secret"), false)

	jar := roundTrip(e, nil, func(c echo.Context) {
		require.NoError(t, other.Add(c, Danger, "forged"))
	})

	var got []Message
	roundTrip(e, jar, func(c echo.Context) { got = s.Pop(c) })
	assert.Empty(t, got)
}
