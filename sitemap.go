package glasscube

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, blogs []content.Blog, projects []content.Project) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "about")},
		{Loc: BuildURL(base, "blog")},
		{Loc: BuildURL(base, "project")},
		{Loc: BuildURL(base, "contact")},
	}
	for _, b := range blogs {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", b.Slug),
			LastMod: lastModified(b.CreatedAt, b.UpdatedAt),
		})
	}
	for _, p := range projects {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "project", p.Slug),
			LastMod: lastModified(p.CreatedAt, p.UpdatedAt),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
