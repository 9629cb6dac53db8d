package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadMedia posts a file as multipart field "media" alongside the write
// secret and returns the URL the service assigned to it.
func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader, key string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("media", filename)
	if err != nil {
		return "", fmt.Errorf("api: upload %s: %w", filename, err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("api: upload %s: %w", filename, err)
	}
	if err := mw.WriteField("key", key); err != nil {
		return "", fmt.Errorf("api: upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("api: upload %s: %w", filename, err)
	}

	var env struct {
		URL string `json:"url"`
	}
	req := request{method: http.MethodPost, path: []string{"media"}, body: &buf, contentType: mw.FormDataContentType()}
	if err := c.do(ctx, req, &env); err != nil {
		return "", fmt.Errorf("api: upload %s: %w", filename, err)
	}
	if env.URL == "" {
		return "", fmt.Errorf("api: upload %s: %w", filename, errors.New("response has no url"))
	}
	return env.URL, nil
}

// DeleteMedia removes a previously uploaded file.
func (c *Client) DeleteMedia(ctx context.Context, url, key string) error {
	payload := struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}{url, key}
	if err := c.send(ctx, http.MethodDelete, payload, nil, "media"); err != nil {
		return fmt.Errorf("api: delete media %s: %w", url, err)
	}
	return nil
}
