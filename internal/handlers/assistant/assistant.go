// internal/handlers/assistant/assistant.go
package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/sanjkatariya/infraFix/internal/assistant"
	httpserver "github.com/sanjkatariya/infraFix/internal/http"
)

// Chatter is the part of assistant.Client the handler needs.
type Chatter interface {
	Chat(ctx context.Context, message string, img *assistant.Image) (string, error)
}

type Handler struct {
	client Chatter
}

func New(client Chatter) *Handler {
	return &Handler{client: client}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Chat handles POST /assistant/chat, either multipart {message, image?} or
// JSON {message}.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	msg, img, err := readChat(w, r)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	reply, err := h.client.Chat(r.Context(), msg, img)
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		httpserver.Fail(w, http.StatusServiceUnavailable, "AI assistant is not configured")
		return
	case err != nil:
		slog.WarnContext(r.Context(), "assistant request failed", "err", err)
		httpserver.Fail(w, http.StatusBadGateway, "AI assistant is unavailable, please try again later")
		return
	}
	httpserver.OK(w, chatReply{Reply: reply}, "")
}

func readChat(w http.ResponseWriter, r *http.Request) (string, *assistant.Image, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		var in chatRequest
		if err := httpserver.Decode(w, r, &in, true); err != nil {
			return "", nil, err
		}
		return in.Message, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, assistant.MaxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, httpserver.BadRequest(imageTooLarge)
		}
		return "", nil, httpserver.BadRequest("Invalid multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	msg := strings.TrimSpace(r.FormValue("message"))
	file, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		if msg == "" {
			return "", nil, httpserver.BadRequest("Missing required fields: message")
		}
		return msg, nil, nil
	}
	if err != nil {
		return "", nil, httpserver.BadRequest("Invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, assistant.MaxImageBytes+1))
	if err != nil {
		return "", nil, httpserver.BadRequest("Invalid image upload")
	}
	img := &assistant.Image{Filename: hdr.Filename, ContentType: hdr.Header.Get("Content-Type"), Data: data}
	switch err := img.Validate(); {
	case errors.Is(err, assistant.ErrImageTooLarge):
		return "", nil, httpserver.BadRequest(imageTooLarge)
	case err != nil:
		return "", nil, httpserver.BadRequest("Please upload an image file")
	}
	return msg, img, nil
}

const imageTooLarge = "The image file is too large. Please upload an image smaller than 10MB."
