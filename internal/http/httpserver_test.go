package httpserver_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/models"
)

func decodeBody(t *testing.T, body string, dst any, strict bool) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return httpserver.Decode(httptest.NewRecorder(), req, dst, strict)
}

func TestDecode_MissingRequiredUsesJSONNames(t *testing.T) {
	var in models.CreateComplaintRequest
	err := decodeBody(t, `{"description":"x"}`, &in, false)

	status, msg := httpserver.ErrorStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields: category, location", msg)
}

func TestDecode_EmptyBody(t *testing.T) {
	var in models.ResourceAssignment
	require.NoError(t, decodeBody(t, "", &in, true))
}

func TestDecode_StrictRejectsProtectedFields(t *testing.T) {
	var p models.ComplaintPatch
	err := decodeBody(t, `{"id":"CPL-evil","description":"x"}`, &p, true)

	status, msg := httpserver.ErrorStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Field cannot be updated: id", msg)
}

func TestDecode_InvalidEnumAndRange(t *testing.T) {
	var u models.ComplaintStatusUpdate
	err := decodeBody(t, `{"status":"done","progress":150}`, &u, true)

	_, msg := httpserver.ErrorStatus(err)
	assert.Equal(t, "Invalid value for field(s): status, progress", msg)
}

func TestDecode_NormalisesStatusAliases(t *testing.T) {
	for _, raw := range []string{`"in progress"`, `"in_progress"`, `"IN-PROGRESS"`, `1`} {
		var u models.ComplaintStatusUpdate
		require.NoError(t, decodeBody(t, `{"status":`+raw+`}`, &u, true), raw)
		assert.Equal(t, models.ComplaintInProgress, u.Status, raw)
	}
}

func TestDecode_BadJSON(t *testing.T) {
	var in models.CreateCrewRequest
	err := decodeBody(t, `{"name":`, &in, false)
	status, msg := httpserver.ErrorStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.True(t, strings.HasPrefix(msg, "Invalid JSON"), msg)

	err = decodeBody(t, `{"name":"a","email":"b"} {}`, &in, false)
	_, msg = httpserver.ErrorStatus(err)
	assert.Equal(t, "Invalid JSON (extra content)", msg)
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{models.ErrComplaintNotFound, 404, "Complaint not found"},
		{models.ErrWorkOrderNotFound, 404, "Workorder not found"},
		{models.ErrCrewNotFound, 404, "Crew member not found"},
		{models.ErrInventoryNotFound, 404, "Inventory item not found"},
		{models.ErrResourceNotFound, 404, "Resource not found"},
		{fmt.Errorf("%w: CPL-1", models.ErrDuplicateID), 409, "A record with this id already exists"},
		{models.ErrComplaintHasWorkOrders, 409, "Complaint has work orders"},
		{models.ErrQuantityRequired, 400, "Missing required fields: quantity"},
		{errors.New("boom"), 500, "boom"},
	}
	for _, tc := range cases {
		status, msg := httpserver.ErrorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg)
	}
}

func TestList_EmptyIsArrayWithCount(t *testing.T) {
	rec := httptest.NewRecorder()
	httpserver.List[models.Complaint](rec, nil)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["data"])
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
