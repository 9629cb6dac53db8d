package glasscube

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/filter"
	"github.com/glasscube/glasscube/settings"
	"github.com/glasscube/glasscube/views"
)

const latestCount = 3

func (a *App) handleLanding(c echo.Context) error {
	latest, err := a.Feed.Latest(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("latest feed: %v", err)
		latest = fallbackLatest
	}
	p := a.page(c, "", views.PageMeta{
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
	})
	p.JSONLD = views.WebsiteJSONLD(p.Site)
	return Render(c, a.Views.Landing(p, views.Landing{
		Stack:    techStack,
		Blogs:    firstN(latest.Blogs, latestCount),
		Projects: firstN(latest.Projects, latestCount),
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	p := a.page(c, "about", views.PageMeta{URL: BuildURL(a.Config.URL, "about")})
	p.Meta.Title = p.Loc.T("about.title")
	return Render(c, a.Views.About(p))
}

func (a *App) handleBlogs(c echo.Context) error {
	st := a.API.LoadBlogs(c.Request().Context())
	fs := filter.FromQuery(c.QueryParams())
	p := a.page(c, "blog", views.PageMeta{URL: BuildURL(a.Config.URL, "blog")})
	p.Meta.Title = p.Loc.T("nav.blog")
	if st.Failed() {
		c.Logger().Errorf("load blogs: %v", st.Err)
	}
	return RenderStatus(c, listStatus(st.Failed()), a.Views.Blogs(p, views.BlogList{
		State:  st,
		Items:  filter.Apply(st.Value.Blogs, fs),
		Filter: fs,
	}))
}

func (a *App) handleProjects(c echo.Context) error {
	st := a.API.LoadProjects(c.Request().Context())
	fs := filter.FromQuery(c.QueryParams())
	p := a.page(c, "project", views.PageMeta{URL: BuildURL(a.Config.URL, "project")})
	p.Meta.Title = p.Loc.T("nav.project")
	if st.Failed() {
		c.Logger().Errorf("load projects: %v", st.Err)
	}
	return RenderStatus(c, listStatus(st.Failed()), a.Views.Projects(p, views.ProjectList{
		State:  st,
		Items:  filter.Apply(st.Value.Projects, fs),
		Filter: fs,
	}))
}

func (a *App) handleBlog(c echo.Context) error {
	slug := c.Param("slug")
	st := a.API.LoadBlog(c.Request().Context(), slug)
	if st.NotFound() {
		return a.renderNotFound(c)
	}
	p := a.page(c, "blog", views.PageMeta{
		Title:       st.Value.Title,
		Description: st.Value.Description,
		URL:         BuildURL(a.Config.URL, "blog", slug),
		OGType:      "article",
		Image:       st.Value.Thumbnail,
	})
	if st.Failed() {
		c.Logger().Errorf("load blog %q: %v", slug, st.Err)
		return RenderStatus(c, http.StatusBadGateway, a.Views.Blog(p, views.BlogDetail{State: st}))
	}
	p.JSONLD = views.BlogPostingJSONLD(p.Site, st.Value)
	return Render(c, a.Views.Blog(p, views.BlogDetail{State: st}))
}

func (a *App) handleProject(c echo.Context) error {
	slug := c.Param("slug")
	st := a.API.LoadProject(c.Request().Context(), slug)
	if st.NotFound() {
		return a.renderNotFound(c)
	}
	p := a.page(c, "project", views.PageMeta{
		Title:       st.Value.Title,
		Description: st.Value.Short,
		URL:         BuildURL(a.Config.URL, "project", slug),
		OGType:      "article",
		Image:       st.Value.Thumbnail,
	})
	if st.Failed() {
		c.Logger().Errorf("load project %q: %v", slug, st.Err)
		return RenderStatus(c, http.StatusBadGateway, a.Views.Project(p, views.ProjectDetail{State: st}))
	}
	p.JSONLD = views.CreativeWorkJSONLD(p.Site, st.Value)
	return Render(c, a.Views.Project(p, views.ProjectDetail{State: st}))
}

func listStatus(failed bool) int {
	if failed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func (a *App) handleSettings(c echo.Context) error {
	store, err := a.prefsStore(c)
	if err != nil {
		return err
	}
	lang := strings.TrimSpace(c.FormValue("language"))
	theme := strings.TrimSpace(c.FormValue("theme"))
	err = store.Update(c.Request().Context(), func(p *settings.Preferences) {
		if lang != "" {
			p.Language = lang
		}
		if theme != "" {
			p.Theme = theme
		}
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Redirect(http.StatusSeeOther, localRedirect(c.FormValue("next")))
}

// localRedirect keeps redirects on this site.
func localRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	blogs, err := a.API.Blogs(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(err)
	}
	projects, err := a.API.Projects(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(err)
	}
	return a.renderSitemap(c, blogs.Blogs, projects.Projects)
}

func (a *App) handleFeed(c echo.Context) error {
	blogs, err := a.API.Blogs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(err)
	}
	return a.renderRSS(c, blogs.Blogs)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nDisallow: /yoz/\n\nSitemap: %s\n", strings.TrimSuffix(BuildURL(a.Config.URL, "sitemap.xml"), "/"))
	return c.String(http.StatusOK, body)
}

func (a *App) renderNotFound(c echo.Context) error {
	p := a.page(c, "", views.PageMeta{})
	p.Meta.Title = p.Loc.T("notfound.title")
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(p))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		p := a.page(c, "", views.PageMeta{})
		p.Meta.Title = p.Loc.T("error.title")
		_ = RenderStatus(c, code, a.Views.ServerError(p))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
