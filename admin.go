package glasscube

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/editor"
	"github.com/glasscube/glasscube/validator"
	"github.com/glasscube/glasscube/views"
)

const maxFormMemory = 32 << 20

var errTooManyWrites = errors.New("too many rejected writes, try again later")

func (a *App) yozPage(c echo.Context, title string) views.Page {
	return a.page(c, "yoz", views.PageMeta{Title: title})
}

func (a *App) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	p := a.yozPage(c, "Dashboard")
	if slug := c.QueryParam("saved"); slug != "" {
		p.Toast = "Saved " + slug
	}
	return Render(c, a.Views.Dashboard(p, views.Dashboard{
		Blogs:    a.API.LoadBlogs(ctx),
		Projects: a.API.LoadProjects(ctx),
	}))
}

func (a *App) handleBlogNew(c echo.Context) error {
	return a.renderBlogEditor(c, http.StatusOK, editor.NewBlogDraft(a.Config.Author), "")
}

func (a *App) handleBlogEdit(c echo.Context) error {
	st := a.API.LoadBlog(c.Request().Context(), c.Param("slug"))
	if st.NotFound() {
		return a.renderNotFound(c)
	}
	if st.Failed() {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(st.Err)
	}
	return a.renderBlogEditor(c, http.StatusOK, editor.BlogDraftFrom(st.Value), "")
}

func (a *App) handleProjectNew(c echo.Context) error {
	return a.renderProjectEditor(c, http.StatusOK, editor.NewProjectDraft(a.Config.Author), "")
}

func (a *App) handleProjectEdit(c echo.Context) error {
	st := a.API.LoadProject(c.Request().Context(), c.Param("slug"))
	if st.NotFound() {
		return a.renderNotFound(c)
	}
	if st.Failed() {
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(st.Err)
	}
	return a.renderProjectEditor(c, http.StatusOK, editor.ProjectDraftFrom(st.Value), "")
}

func (a *App) renderBlogEditor(c echo.Context, code int, d editor.BlogDraft, toast string) error {
	p := a.yozPage(c, "Blog editor")
	p.Toast = toast
	return RenderStatus(c, code, a.Views.BlogEditor(p, views.BlogEditor{
		Draft:  d,
		Action: formAction(c, "blog"),
		Types:  content.EditableTypes,
	}))
}

func (a *App) renderProjectEditor(c echo.Context, code int, d editor.ProjectDraft, toast string) error {
	p := a.yozPage(c, "Project editor")
	p.Toast = toast
	return RenderStatus(c, code, a.Views.ProjectEditor(p, views.ProjectEditor{
		Draft:  d,
		Action: formAction(c, "project"),
		Types:  content.EditableTypes,
	}))
}

// formAction posts new drafts to the collection and existing ones back to
// their edit URL.
func formAction(c echo.Context, kind string) string {
	if slug := c.Param("slug"); slug != "" {
		return "/yoz/" + kind + "/" + url.PathEscape(slug) + "/edit/"
	}
	return "/yoz/" + kind + "/"
}

// editorForm is one parsed editor submission.
type editorForm struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
	key    string
	action editor.Action
}

func parseEditorForm(c echo.Context) (editorForm, error) {
	r := c.Request()
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return editorForm{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid form").SetInternal(err)
	}
	f := editorForm{
		values: r.PostForm,
		key:    r.PostForm.Get(editor.FieldKey),
		action: editor.ParseAction(r.PostForm.Get(editor.FieldAction)),
	}
	if r.MultipartForm != nil {
		f.files = r.MultipartForm.File
	}
	return f, nil
}

func (f editorForm) file(name string) *multipart.FileHeader {
	if fhs := f.files[name]; len(fhs) > 0 && fhs[0].Filename != "" {
		return fhs[0]
	}
	return nil
}

// mutatesRemote reports whether handling f calls a write endpoint.
func (f editorForm) mutatesRemote() bool {
	switch f.action.Kind {
	case editor.ActionSave, editor.ActionMediaDelete, editor.ActionThumbnailDelete:
		return true
	}
	return len(f.files) > 0
}

// draftMedia is the part of a draft that editor actions touch.
type draftMedia struct {
	thumbnail *string
	blocks    *editor.Blocks
	newType   content.BlockType
}

// applyAction uploads pending files and then runs every action except save.
// On error the draft keeps whatever succeeded before it.
func (a *App) applyAction(c echo.Context, f editorForm, m draftMedia) error {
	ctx := c.Request().Context()
	if fh := f.file(editor.ThumbnailFileField); fh != nil {
		name, data, err := readUpload(fh, a.Config.MediaMaxWidth)
		if err != nil {
			return err
		}
		u, err := editor.Upload(ctx, a.API, name, bytes.NewReader(data), f.key)
		if err != nil {
			return err
		}
		*m.thumbnail = u
	}
	for i, b := range *m.blocks {
		fh := f.file(editor.BlockFileField(i))
		if fh == nil || !b.Type.IsMedia() {
			continue
		}
		name, data, err := readUpload(fh, a.Config.MediaMaxWidth)
		if err != nil {
			return err
		}
		next, err := editor.AttachMedia(ctx, a.API, *m.blocks, i, name, bytes.NewReader(data), f.key)
		if err != nil {
			return err
		}
		*m.blocks = next
	}

	switch f.action.Kind {
	case editor.ActionAdd:
		*m.blocks = m.blocks.Append(m.newType)
	case editor.ActionRemove:
		next, err := m.blocks.Remove(f.action.Index)
		if err != nil {
			return err
		}
		*m.blocks = next
	case editor.ActionMediaDelete:
		next, err := editor.DetachMedia(ctx, a.API, *m.blocks, f.action.Index, f.key)
		if err != nil {
			return err
		}
		*m.blocks = next
	case editor.ActionThumbnailDelete:
		if *m.thumbnail != "" {
			if err := editor.Delete(ctx, a.API, *m.thumbnail, f.key); err != nil {
				return err
			}
			*m.thumbnail = ""
		}
	}
	return nil
}

// checkWrite refuses writes from an IP with too many rejected secrets.
func (a *App) checkWrite(c echo.Context, f editorForm) error {
	if f.mutatesRemote() && !a.writeLimiter.Check(c.RealIP()) {
		return errTooManyWrites
	}
	return nil
}

// editorFailure logs err, records rejected secrets and picks the status
// and toast for the re-rendered form.
func (a *App) editorFailure(c echo.Context, err error) (int, string) {
	switch {
	case errors.Is(err, errTooManyWrites):
		return http.StatusTooManyRequests, "Too many rejected writes. Try again later."
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, "File too large (max 50MB)"
	case errors.Is(err, api.ErrUnauthorized):
		a.writeLimiter.Record(c.RealIP())
		return http.StatusUnauthorized, "The secret key was rejected"
	case errors.Is(err, editor.ErrMissingKey), errors.Is(err, editor.ErrBlockIndex), errors.Is(err, editor.ErrNotMedia):
		return http.StatusUnprocessableEntity, editor.Message(err)
	}
	var verr validator.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, editor.Message(err)
	}
	c.Logger().Errorf("editor: %v", err)
	return http.StatusBadGateway, editor.Message(err)
}

func (a *App) handleBlogSubmit(c echo.Context) error {
	f, err := parseEditorForm(c)
	if err != nil {
		return err
	}
	d, err := editor.DecodeBlogForm(f.values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = a.checkWrite(c, f)
	if err == nil {
		err = a.applyAction(c, f, draftMedia{thumbnail: &d.Thumbnail, blocks: &d.Content, newType: d.NewType})
	}
	if err == nil && f.action.Kind == editor.ActionSave {
		var saved content.Blog
		if saved, err = editor.SaveBlog(c.Request().Context(), a.API, d, f.key); err == nil {
			a.Feed.Invalidate()
			return c.Redirect(http.StatusSeeOther, "/yoz/?saved="+url.QueryEscape(saved.Slug))
		}
	}
	if err != nil {
		code, toast := a.editorFailure(c, err)
		return a.renderBlogEditor(c, code, d, toast)
	}
	return a.renderBlogEditor(c, http.StatusOK, d, "")
}

func (a *App) handleProjectSubmit(c echo.Context) error {
	f, err := parseEditorForm(c)
	if err != nil {
		return err
	}
	d, err := editor.DecodeProjectForm(f.values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = a.checkWrite(c, f)
	if err == nil {
		err = a.applyAction(c, f, draftMedia{thumbnail: &d.Thumbnail, blocks: &d.Full, newType: d.NewType})
	}
	if err == nil && f.action.Kind == editor.ActionSave {
		var saved content.Project
		if saved, err = editor.SaveProject(c.Request().Context(), a.API, d, f.key); err == nil {
			a.Feed.Invalidate()
			return c.Redirect(http.StatusSeeOther, "/yoz/?saved="+url.QueryEscape(saved.Slug))
		}
	}
	if err != nil {
		code, toast := a.editorFailure(c, err)
		return a.renderProjectEditor(c, code, d, toast)
	}
	return a.renderProjectEditor(c, http.StatusOK, d, "")
}
