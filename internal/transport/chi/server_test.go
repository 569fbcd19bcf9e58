package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/query"
	svgrender "github.com/astrovis/starfield/internal/render/svg"
	starmapuc "github.com/astrovis/starfield/internal/usecase/starmap"
)

type stubCatalog struct {
	rows  domain.ResultSet
	err   error
	calls int
}

func (c *stubCatalog) Query(_ context.Context, _ query.Descriptor) (domain.ResultSet, error) {
	c.calls++
	return c.rows, c.err
}

func newTestServer(catalog *stubCatalog) http.Handler {
	svc := starmapuc.New(catalog)
	srv := NewServer(svc, svgrender.NewRenderer(svgrender.DefaultStyle()), zap.NewNop())
	r := chirouter.NewRouter()
	srv.Routes(r)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGetStarmap(t *testing.T) {
	catalog := &stubCatalog{rows: domain.ResultSet{
		{SourceID: 1, RA: 0, Dec: 0, Parallax: 1000},
		{SourceID: 2, RA: 180, Dec: 30, Parallax: 400},
	}}
	h := newTestServer(catalog)

	rec := get(t, h, "/v1/starmap?distance=12&unit=ly")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Nearby Stars within 12.00 ly") {
		t.Error("rendered title missing")
	}
}

func TestGetStarmap_DefaultsToLightYears(t *testing.T) {
	catalog := &stubCatalog{rows: domain.ResultSet{{SourceID: 1, Parallax: 1000}}}
	rec := get(t, newTestServer(catalog), "/v1/starmap?distance=12")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "12.00 ly") {
		t.Error("unit did not default to light-years")
	}
}

func TestGetStarmap_InvalidInput(t *testing.T) {
	catalog := &stubCatalog{}
	h := newTestServer(catalog)

	for _, target := range []string{
		"/v1/starmap?distance=abc",
		"/v1/starmap?distance=-5",
		"/v1/starmap?distance=10&unit=cubit",
		"/v1/starmap",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, rec.Code)
			continue
		}
		if body := decodeBody(t, rec); body["code"] != "invalid_distance" {
			t.Errorf("%s: code %q", target, body["code"])
		}
	}
	if catalog.calls != 0 {
		t.Errorf("invalid input reached the catalog (%d calls)", catalog.calls)
	}
}

func TestGetStarmap_EmptySample(t *testing.T) {
	catalog := &stubCatalog{rows: domain.ResultSet{}}
	rec := get(t, newTestServer(catalog), "/v1/starmap?distance=0.0001&unit=ly")

	// A valid terminal state: 200 with a notice, no image.
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q, want JSON notice", ct)
	}
	if body := decodeBody(t, rec); body["code"] != "empty_sample" {
		t.Errorf("code: got %q", body["code"])
	}
}

func TestGetStarmap_CatalogErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unavailable", domain.ErrCatalogUnavailable, http.StatusBadGateway, "catalog_unavailable"},
		{"syntax", domain.ErrQuerySyntax, http.StatusBadRequest, "query_syntax_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(&stubCatalog{err: tt.err}), "/v1/starmap?distance=10")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeBody(t, rec); body["code"] != tt.wantCode {
				t.Errorf("code: got %q, want %q", body["code"], tt.wantCode)
			}
		})
	}
}

func TestGetStars(t *testing.T) {
	catalog := &stubCatalog{rows: domain.ResultSet{
		{SourceID: 1, RA: 0, Dec: 0, Parallax: 1000},
		{SourceID: 2, RA: 90, Dec: 0, Parallax: 500},
	}}
	rec := get(t, newTestServer(catalog), "/v1/stars?distance=10&unit=pc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var m domain.StarMap
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode star map: %v", err)
	}
	if len(m.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(m.Points))
	}
	if m.AxisBound != 10 {
		t.Errorf("axis bound: got %v", m.AxisBound)
	}
	if m.Points[0].Size <= m.Points[1].Size {
		t.Errorf("nearer star must render larger: %v vs %v", m.Points[0].Size, m.Points[1].Size)
	}
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(&stubCatalog{}), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
}
