package serverutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plerrs "github.com/jdholdren/pagelinks/internal/errors"
	"github.com/jdholdren/pagelinks/logger"
	"github.com/jdholdren/pagelinks/pagination"
)

type createReq struct {
	Name string `json:"name"`
}

func (c createReq) Validate() error {
	if c.Name == "" {
		return plerrs.E(http.StatusBadRequest, "invalid request", plerrs.Detail{Field: "name", Error: "required"})
	}
	return nil
}

func TestDecodeValid(t *testing.T) {
	got, err := DecodeValid[createReq](strings.NewReader(`{"name": "web-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "web-01", got.Name)

	_, err = DecodeValid[createReq](strings.NewReader(`{`))
	assert.Equal(t, http.StatusBadRequest, plerrs.Status(err))

	_, err = DecodeValid[createReq](strings.NewReader(`{}`))
	var plErr *plerrs.Error
	require.ErrorAs(t, err, &plErr)
	assert.Equal(t, []plerrs.Detail{{Field: "name", Error: "required"}}, plErr.Details)
}

func TestHandlerFuncE(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "structured",
			err:        plerrs.E(http.StatusNotFound, "server not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "server not found",
		},
		{
			name:       "wrapped",
			err:        errors.Join(errors.New("context"), plerrs.E(http.StatusConflict, "taken")),
			wantStatus: http.StatusConflict,
			wantMsg:    "taken",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandlerFuncE(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
		})
	}
}

func TestWriteLinks(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteLinks(rec, pagination.LinkSet{})
	assert.Empty(t, rec.Header().Get("Link"))

	WriteLinks(rec, pagination.LinkSet{
		{Rel: pagination.RelSelf, URL: "/v1/servers?page%5Bnumber%5D=1&page%5Bsize%5D=2"},
		{Rel: pagination.RelNext, URL: "/v1/servers?page%5Bnumber%5D=2&page%5Bsize%5D=2"},
	})
	assert.Equal(t,
		`</v1/servers?page%5Bnumber%5D=1&page%5Bsize%5D=2>; rel="self", </v1/servers?page%5Bnumber%5D=2&page%5Bsize%5D=2>; rel="next"`,
		rec.Header().Get("Link"),
	)
}

func TestAccessLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logger.New(&buf, "json", "info"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := AccessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/servers", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "req-1", entry["request_id"])
	}

	var completed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &completed))
	assert.EqualValues(t, http.StatusTeapot, completed["status_code"])
}
