// Package testutil holds shared helpers for HTTP handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/shared/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Envelope mirrors utils.APIResponse with the payload left raw.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewTestContext builds a context for a request whose body, if any, is
// sent as JSON.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// AsStudent marks the request as made by the student, the way the identity
// middleware would after resolving X-Student-ID.
func AsStudent(c *gin.Context, rollNo string) {
	c.Set(constants.ContextKeyStudent, rollNo)
}

// AsAuthority is AsStudent for X-Authority-ID.
func AsAuthority(c *gin.Context, authorityID uint) {
	c.Set(constants.ContextKeyAuthority, authorityID)
}

// ForComplaint sets the :id route parameter.
func ForComplaint(c *gin.Context, id string) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: id})
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// DecodeEnvelope fails the test unless the body is a response envelope.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// DecodeData decodes the envelope payload into T.
func DecodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := DecodeEnvelope(t, w)
	require.True(t, env.Success, "expected a successful response, got %s", w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// ErrorReason returns the reason tag of an error response.
func ErrorReason(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := DecodeEnvelope(t, w)
	require.NotNil(t, env.Error, "expected an error response, got %s", w.Body.String())
	return env.Error.Reason
}
