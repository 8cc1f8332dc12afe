package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adpilot/admanager/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter registers a single handler behind a stub identity so handler
// tests do not need a real token.
func newTestRouter(userID, method, route string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if userID != "" {
			middlewares.SetUserID(c, userID)
		}
	}, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	requireStatus(t, w, status)
	body := decodeErrorBody(t, w)
	if body.Error.Code != code {
		t.Fatalf("error code = %q, want %q (body: %s)", body.Error.Code, code, w.Body.String())
	}
	return body
}

func validationFields(t *testing.T, body errorBody) map[string]string {
	t.Helper()

	var details struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body.Error.Details, &details); err != nil {
		t.Fatalf("decoding validation details %q: %v", body.Error.Details, err)
	}
	return details.Fields
}
