package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	Info    = "info"
	Success = "success"
	Warning = "warning"
	Danger  = "danger"
)

const (
	cookieName = "flash"
	flashKey   = "_messages"
)

// Message is shown once on the next rendered page.
type Message struct {
	Category string
	Text     string
}

func init() {
	gob.Register(Message{})
}

type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

func (s *Store) Add(c echo.Context, category, text string) error {
	sess, err := s.cookies.Get(c.Request(), cookieName)
	if err != nil && sess == nil {
		return err
	}
	sess.AddFlash(Message{Category: category, Text: text}, flashKey)
	return sess.Save(c.Request(), c.Response())
}

// Pop returns the pending messages and clears them. A tampered or unreadable
// cookie yields no messages.
func (s *Store) Pop(c echo.Context) []Message {
	sess, err := s.cookies.Get(c.Request(), cookieName)
	if sess == nil {
		return nil
	}
	raw := sess.Flashes(flashKey)
	if len(raw) == 0 && err == nil {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
