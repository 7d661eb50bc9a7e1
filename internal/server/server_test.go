package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danmuck/ednsctl/internal/observability"
	"github.com/danmuck/ednsctl/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s := New("inspector-test", "1.2.3-test", ":0", nil, 64)
	s.RegisterRoutes()
	return s
}

func do(t *testing.T, s *Inspector, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	var decoded map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode body: %v body=%s", err, rr.Body.String())
		}
	}
	return rr, decoded
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestInspector(t)
	rr, body := do(t, s, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK || body["status"] != "ok" || body["service"] != "inspector-test" || body["version"] != "1.2.3-test" {
		t.Fatalf("unexpected health: code=%d body=%v", rr.Code, body)
	}
	rr, _ = do(t, s, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected metrics status: %d", rr.Code)
	}
}

func TestCodesRoutes(t *testing.T) {
	s := newTestInspector(t)
	rr, body := do(t, s, http.MethodGet, "/codes", "")
	codes, ok := body["codes"].([]any)
	if rr.Code != http.StatusOK || !ok || len(codes) != 25 {
		t.Fatalf("unexpected codes: code=%d body=%v", rr.Code, body)
	}

	rr, body = do(t, s, http.MethodGet, "/codes/15", "")
	if rr.Code != http.StatusOK || body["label"] != "Blocked" {
		t.Fatalf("unexpected code lookup: code=%d body=%v", rr.Code, body)
	}
	rr, _ = do(t, s, http.MethodGet, "/codes/25", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", rr.Code)
	}
	rr, _ = do(t, s, http.MethodGet, "/codes/70000", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range id, got %d", rr.Code)
	}
}

func TestEncodeDecodeRoutes(t *testing.T) {
	s := newTestInspector(t)
	rr, body := do(t, s, http.MethodPost, "/encode", `{"code":"blocked","extra_text":"geo-restricted"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected encode status: %d body=%v", rr.Code, body)
	}
	hexOut, _ := body["hex"].(string)
	if !strings.HasPrefix(hexOut, "000f0010000f") {
		t.Fatalf("unexpected hex: %q", hexOut)
	}

	rr, body = do(t, s, http.MethodPost, "/decode", `{"hex":"`+hexOut+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected decode status: %d body=%v", rr.Code, body)
	}
	opts, _ := body["options"].([]any)
	if len(opts) != 1 {
		t.Fatalf("expected one option, got %v", body)
	}
	first, _ := opts[0].(map[string]any)
	if first["text"] != "{EDE: 15(Blocked)(geo-restricted)}" {
		t.Fatalf("unexpected option: %v", first)
	}
	log.Info().Str("hex", hexOut).Msg("server/http: encode/decode round trip")
}

func TestDecodeRouteErrors(t *testing.T) {
	s := newTestInspector(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing hex", `{}`, http.StatusBadRequest},
		{"bad hex", `{"hex":"zz"}`, http.StatusBadRequest},
		{"invalid utf8", `{"hex":"000f00040000fffe"}`, http.StatusUnprocessableEntity},
		{"too large", `{"hex":"` + strings.Repeat("00", 65) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := do(t, s, http.MethodPost, "/decode", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d body=%v", tt.want, rr.Code, body)
			}
			if _, ok := body["error"]; !ok {
				t.Fatalf("expected error body, got %v", body)
			}
		})
	}
}

func TestEncodeRouteUnknownName(t *testing.T) {
	s := newTestInspector(t)
	rr, _ := do(t, s, http.MethodPost, "/encode", `{"code":"nope"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCodecRoutesRecordOutcome(t *testing.T) {
	s := newTestInspector(t)
	decoded := codecCounter(t, s, "/decode", observability.OutcomeDecoded)
	failed := codecCounter(t, s, "/decode", observability.OutcomeFailed)
	encoded := codecCounter(t, s, "/encode", observability.OutcomeEncoded)

	do(t, s, http.MethodPost, "/decode", `{"hex":"000f00020017"}`)
	do(t, s, http.MethodPost, "/decode", `{"hex":"000f00040000fffe"}`)
	do(t, s, http.MethodPost, "/encode", `{"code":"23"}`)
	do(t, s, http.MethodPost, "/decode", `{}`)

	if got := codecCounter(t, s, "/decode", observability.OutcomeDecoded) - decoded; got != 1 {
		t.Fatalf("expected one decoded request, got %v", got)
	}
	if got := codecCounter(t, s, "/decode", observability.OutcomeFailed) - failed; got != 1 {
		t.Fatalf("expected one failed decode, got %v", got)
	}
	if got := codecCounter(t, s, "/encode", observability.OutcomeEncoded) - encoded; got != 1 {
		t.Fatalf("expected one encoded request, got %v", got)
	}
}

func codecCounter(t *testing.T, s *Inspector, path, outcome string) float64 {
	t.Helper()
	rr, _ := do(t, s, http.MethodGet, "/metrics", "")
	prefix := `ednsctl_http_codec_requests_total{outcome="` + outcome + `",path="` + path + `",service="inspector-test"} `
	for _, line := range strings.Split(rr.Body.String(), "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				t.Fatalf("parse %q: %v", line, err)
			}
			return n
		}
	}
	return 0
}
