package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjkatariya/infraFix/internal/auth"
	"github.com/sanjkatariya/infraFix/internal/middleware"
	"github.com/sanjkatariya/infraFix/internal/models"
)

func TestTextHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, slog.LevelInfo))

	log.Info("work order opened", "status", 201, "id", "WO-1", "note", "two words", "took", 1500*time.Millisecond)
	log.Debug("hidden")

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} level=INFO msg="work order opened" status=201 id=WO-1 note="two words" took=1.5s\n$`), line)
}

func TestTextHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, slog.LevelDebug)).With("component", "repo").WithGroup("cascade")

	log.Debug("resolved", "complaint_id", "CPL-1")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "component=repo")
	assert.Contains(t, buf.String(), "cascade.complaint_id=CPL-1")
}

func TestTextHandler_EnrichesFromRequestContext(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, slog.LevelInfo))

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "inside")
	})
	h = middleware.EnrichLogger(h)
	h = middleware.RequestID(true)(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	sess := &models.Session{Token: "tok", User: models.User{ID: "7", Role: models.RoleAdmin}}
	req = req.WithContext(auth.WithSession(req.Context(), sess))
	h.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, "request_id=rid-123")
	assert.Contains(t, line, "user_id=7")
	assert.Contains(t, line, "role=admin")
}

func TestContextHandler_AddsAttrsToJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(contextHandler{slog.NewJSONHandler(&buf, nil)})

	ctx := auth.WithUser(context.Background(), &models.User{ID: "9", Role: models.RoleCitizen})
	log.InfoContext(ctx, "hello")
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"user_id":"9"`)
	assert.Contains(t, buf.String(), `"role":"citizen"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestTextHandler_NestedGroupsAndLeadKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, slog.LevelInfo))

	log.Info("request",
		"bytes", 12,
		slog.Group("store", slog.Group("cascade", "complaint_id", "CPL-1")),
		"status", 200,
		"method", "GET",
		"err", assert.AnError,
	)

	line := buf.String()
	assert.Contains(t, line, `msg="request" method=GET status=200 bytes=12 `)
	assert.Contains(t, line, "store.cascade.complaint_id=CPL-1")
	assert.Contains(t, line, `err="assert.AnError general error for testing"`)
}
