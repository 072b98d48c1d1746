package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
)

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error) {

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, errors.InternalError("Failed to build upload").WithError(err)
	}

	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.InternalError("Failed to read upload content").WithError(err)
	}

	if err := writer.Close(); err != nil {
		return nil, errors.InternalError("Failed to build upload").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("upload"), &body)
	if err != nil {
		return nil, errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp models.UploadResponse

	if err := c.send(req, false, &resp); err != nil {
		return nil, err
	}

	if resp.Filename == "" {
		return nil, errors.ThirdPartyError("Upload response did not include a filename")
	}

	return &resp, nil
}

// ImageURL is the public address of an uploaded file.
func (c *Client) ImageURL(filename string) string {
	return c.uploadsURL + "/" + url.PathEscape(filename)
}
