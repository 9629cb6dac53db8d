package glasscube

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// page builds the frame every view shares from the request.
func (a *App) page(c echo.Context, nav string, meta views.PageMeta) views.Page {
	prefs := a.preferences(c)
	return views.Page{
		Site:      a.site(),
		Meta:      meta,
		Loc:       a.Locale.Localizer(prefs.Language),
		Prefs:     prefs,
		Languages: a.Locale.Languages(),
		CSRF:      CsrfToken(c),
		Path:      c.Request().URL.RequestURI(),
		Nav:       nav,
	}
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
