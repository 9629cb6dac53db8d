package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/validator"
)

// ErrMissingKey is returned before any network call when no write secret
// was supplied.
var ErrMissingKey = errors.New("editor: secret key is required")

// BlogWriter persists blogs. *api.Client satisfies it.
type BlogWriter interface {
	CreateBlog(ctx context.Context, b content.Blog, key string) error
	UpdateBlog(ctx context.Context, b content.Blog, key string) error
}

// ProjectWriter persists projects. *api.Client satisfies it.
type ProjectWriter interface {
	CreateProject(ctx context.Context, p content.Project, key string) error
	UpdateProject(ctx context.Context, p content.Project, key string) error
}

// MediaStore uploads and deletes media files. *api.Client satisfies it.
type MediaStore interface {
	UploadMedia(ctx context.Context, filename string, r io.Reader, key string) (string, error)
	DeleteMedia(ctx context.Context, url, key string) error
}

func requireKey(key string) error {
	if key == "" {
		return ErrMissingKey
	}
	return nil
}

// Validate checks a draft before submission. The key itself is opaque and
// only checked for presence.
func Validate(title, key string) error {
	if err := requireKey(key); err != nil {
		return err
	}
	v := validator.New()
	v.Check(validator.NotBlank(title), "title", "Title is required")
	v.Check(content.Slugify(title) != "", "slug", "Title must contain letters or digits")
	v.Check(validator.MaxChars(title, 200), "title", "Title must not be more than 200 characters")
	return v.Err()
}

// SaveBlog validates d and creates it, or replaces the whole stored
// document when d already has an id.
func SaveBlog(ctx context.Context, w BlogWriter, d BlogDraft, key string) (content.Blog, error) {
	if err := Validate(d.Title, key); err != nil {
		return content.Blog{}, err
	}
	b := d.Blog()
	var err error
	if b.ID == "" {
		err = w.CreateBlog(ctx, b, key)
	} else {
		err = w.UpdateBlog(ctx, b, key)
	}
	if err != nil {
		return content.Blog{}, fmt.Errorf("editor: save blog %q: %w", b.Slug, err)
	}
	return b, nil
}

// SaveProject is SaveBlog for projects.
func SaveProject(ctx context.Context, w ProjectWriter, d ProjectDraft, key string) (content.Project, error) {
	if err := Validate(d.Title, key); err != nil {
		return content.Project{}, err
	}
	p := d.Project()
	var err error
	if p.ID == "" {
		err = w.CreateProject(ctx, p, key)
	} else {
		err = w.UpdateProject(ctx, p, key)
	}
	if err != nil {
		return content.Project{}, fmt.Errorf("editor: save project %q: %w", p.Slug, err)
	}
	return p, nil
}

// AttachMedia uploads r and stores the returned URL in block i.
func AttachMedia(ctx context.Context, m MediaStore, b Blocks, i int, filename string, r io.Reader, key string) (Blocks, error) {
	if err := b.check(i); err != nil {
		return b, err
	}
	if !b[i].Type.IsMedia() {
		return b, fmt.Errorf("block %d is %s: %w", i, b[i].Type, ErrNotMedia)
	}
	url, err := Upload(ctx, m, filename, r, key)
	if err != nil {
		return b, err
	}
	return b.Update(i, url)
}

// DetachMedia deletes the media referenced by block i and clears its data.
// Text blocks are refused so their content never reaches the media store.
func DetachMedia(ctx context.Context, m MediaStore, b Blocks, i int, key string) (Blocks, error) {
	if err := b.check(i); err != nil {
		return b, err
	}
	if !b[i].Type.IsMedia() {
		return b, fmt.Errorf("block %d is %s: %w", i, b[i].Type, ErrNotMedia)
	}
	if b[i].Data == "" {
		return b, nil
	}
	if err := Delete(ctx, m, b[i].Data, key); err != nil {
		return b, err
	}
	return b.Update(i, "")
}

// Upload sends a single media file, used directly for thumbnails.
func Upload(ctx context.Context, m MediaStore, filename string, r io.Reader, key string) (string, error) {
	if err := requireKey(key); err != nil {
		return "", err
	}
	url, err := m.UploadMedia(ctx, filename, r, key)
	if err != nil {
		return "", fmt.Errorf("editor: upload %s: %w", filename, err)
	}
	return url, nil
}

// Delete removes a media file by URL.
func Delete(ctx context.Context, m MediaStore, url, key string) error {
	if err := requireKey(key); err != nil {
		return err
	}
	if err := m.DeleteMedia(ctx, url, key); err != nil {
		return fmt.Errorf("editor: delete %s: %w", url, err)
	}
	return nil
}

var reVideo = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)$`)

// IsVideoURL decides how an uploaded file is previewed.
func IsVideoURL(url string) bool {
	return reVideo.MatchString(url)
}

// Message turns an editor error into the text shown in a toast.
func Message(err error) string {
	var verr validator.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingKey):
		return "Secret key is required"
	case errors.As(err, &verr):
		return verr.First()
	case errors.Is(err, ErrBlockIndex):
		return "That block no longer exists"
	case errors.Is(err, ErrNotMedia):
		return "That block has no media"
	default:
		return "Something went wrong: " + err.Error()
	}
}
