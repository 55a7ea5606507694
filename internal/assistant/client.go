// Package assistant talks to the external AI classification/chat service.
// The service is a black box: it takes multipart {message, image?} and
// answers with JSON of no fixed schema, or plain text.
package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// MaxImageBytes is the largest image forwarded to the service.
const MaxImageBytes = 10 << 20 // 10MB

const maxReplyBytes = 1 << 20

// Fallback is shown when the service answers with nothing usable.
const Fallback = "I received your message but couldn't generate a response. Please try again."

var (
	ErrNotConfigured = errors.New("assistant: no service url configured")
	ErrUpstream      = errors.New("assistant: upstream request failed")
	ErrImageTooLarge = errors.New("assistant: image larger than 10MB")
	ErrNotAnImage    = errors.New("assistant: attachment is not an image")
)

// Image is an attachment forwarded as the "image" form field.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks size and content type. An empty ContentType is sniffed.
func (img *Image) Validate() error {
	if len(img.Data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	ct := img.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(img.Data)
		img.ContentType = ct
	}
	if !strings.HasPrefix(ct, "image/") {
		return ErrNotAnImage
	}
	return nil
}

type Client struct {
	url  string
	http *http.Client
}

// New returns a client posting to url. An empty url yields a client whose
// Chat always fails with ErrNotConfigured.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{url: strings.TrimSpace(url), http: &http.Client{Timeout: timeout}}
}

func (c *Client) Configured() bool { return c != nil && c.url != "" }

// Chat forwards message and optional image and returns the normalised
// reply text. Transport errors and non-2xx answers wrap ErrUpstream.
// There are no retries.
func (c *Client) Chat(ctx context.Context, message string, img *Image) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	body, contentType, err := encodeForm(message, img)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json, text/plain;q=0.9")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	slog.DebugContext(ctx, "assistant reply", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return Normalize(resp.Header.Get("Content-Type"), raw), nil
}

func encodeForm(message string, img *Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("message", message); err != nil {
		return nil, "", err
	}
	if img != nil {
		name := img.Filename
		if name == "" {
			name = "image"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(name)))
		h.Set("Content-Type", img.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
