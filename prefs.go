package glasscube

import (
	"context"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/settings"
)

const prefsSession = "prefs"

const prefsContextKey = "glasscube.prefs"

// sessionBackend stores display preferences in the signed session cookie.
// A visitor without a cookie gets the language their browser asks for.
type sessionBackend struct {
	c      echo.Context
	bundle interface{ Match(...string) string }
}

func (b sessionBackend) Load(context.Context) (settings.Preferences, error) {
	p := settings.Defaults
	p.Language = b.bundle.Match(b.c.Request().Header.Get("Accept-Language"))

	sess, err := session.Get(prefsSession, b.c)
	if err != nil {
		// unreadable cookie (rotated secret): start over
		return p, nil
	}
	if lang, ok := sess.Values["language"].(string); ok {
		p.Language = lang
	}
	if theme, ok := sess.Values["theme"].(string); ok {
		p.Theme = theme
	}
	return p, nil
}

func (b sessionBackend) Save(_ context.Context, p settings.Preferences) error {
	sess, err := session.Get(prefsSession, b.c)
	if sess == nil {
		return err
	}
	sess.Values["language"] = p.Language
	sess.Values["theme"] = p.Theme
	return sess.Save(b.c.Request(), b.c.Response())
}

// prefsStore opens the request's preference store once per request.
func (a *App) prefsStore(c echo.Context) (*settings.Store, error) {
	if s, ok := c.Get(prefsContextKey).(*settings.Store); ok {
		return s, nil
	}
	s, err := settings.Open(c.Request().Context(), sessionBackend{c: c, bundle: a.Locale})
	if err != nil {
		return nil, err
	}
	c.Set(prefsContextKey, s)
	return s, nil
}

func (a *App) preferences(c echo.Context) settings.Preferences {
	s, err := a.prefsStore(c)
	if err != nil {
		c.Logger().Warnf("preferences: %v", err)
		return settings.Defaults
	}
	return s.Get()
}
