// Package media talks to the external media upload service. Files are
// posted as multipart form data with a fixed unsigned preset; the service
// answers with a durable secure URL.
package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/config"
)

// Client posts binaries to the upload endpoint.
type Client struct {
	baseURL string
	cloud   string
	preset  string
	timeout time.Duration
}

// NewClient builds a client from the media configuration.
func NewClient(cfg config.MediaConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.UploadURL, "/"),
		cloud:   cfg.Cloud,
		preset:  cfg.Preset,
		timeout: timeout,
	}
}

// ResourceType picks the upload path segment from a declared media type.
// Anything that is not a video is uploaded as an image.
func ResourceType(mediaType string) string {
	if strings.HasPrefix(strings.ToLower(mediaType), "video/") {
		return "video"
	}
	return "image"
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts one file and returns its durable URL. Non-2xx responses are
// failures; there is no retry and no partial success.
func (c *Client) Upload(data []byte, mediaType string) (string, error) {
	resource := ResourceType(mediaType)
	url := fmt.Sprintf("%s/%s/%s/upload", c.baseURL, c.cloud, resource)

	var resp uploadResponse
	code := 0
	err := gout.POST(url).
		SetTimeout(c.timeout).
		SetForm(gout.H{
			"upload_preset": c.preset,
			"file":          gout.FormMem(data),
		}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "media upload request")
	}
	if code < 200 || code >= 300 {
		msg := resp.Error.Message
		if msg == "" {
			msg = "upload rejected"
		}
		return "", errors.Errorf("media upload failed: status %d: %s", code, msg)
	}
	if resp.SecureURL == "" {
		return "", errors.New("media upload response missing secure_url")
	}

	zap.L().Info("media uploaded",
		zap.String("resource_type", resource),
		zap.Int("size", len(data)))
	return resp.SecureURL, nil
}
