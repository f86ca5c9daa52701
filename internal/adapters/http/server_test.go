package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	graftHTTP "github.com/aretw0/graft/internal/adapters/http"
	"github.com/aretw0/graft/internal/validator"
)

type fakeInspector struct {
	report *validator.Report
	err    error
}

func (f *fakeInspector) Check(context.Context) (*validator.Report, error) {
	return f.report, f.err
}

func (f *fakeInspector) Units() []graft.UnitSummary {
	return []graft.UnitSummary{
		{Name: "Button", Required: []string{"onSave"}},
		{Name: "Panel", Connected: true, Required: []string{"onSave", "title"}},
	}
}

func (f *fakeInspector) Describe(name string) (graft.UnitDetail, error) {
	if name != "Panel" {
		return graft.UnitDetail{}, fmt.Errorf("unit %q is not registered", name)
	}
	return graft.UnitDetail{
		UnitSummary: graft.UnitSummary{Name: "Panel", Connected: true},
		Inputs:      map[string]string{"title": "string", "onSave": "func"},
		Children:    []string{"Button"},
		Slices: &graft.SliceDetail{
			State:    []string{"title"},
			Dispatch: []string{"onSave"},
		},
	}, nil
}

func (f *fakeInspector) Modules() ([]graft.ModuleSummary, error) {
	return []graft.ModuleSummary{
		{Path: "/", Name: "app", Children: []string{"user"}},
		{Path: "user", Name: "user"},
	}, nil
}

func serve(t *testing.T, inspector graftHTTP.Inspector, strict bool, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	graftHTTP.NewHandler(inspector, strict).ServeHTTP(rec, req)
	return rec
}

func cleanReport() *validator.Report {
	return &validator.Report{Digest: "d", Units: 2, Modules: 2}
}

func TestServer_Health(t *testing.T) {
	rec := serve(t, &fakeInspector{report: cleanReport()}, false, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Report(t *testing.T) {
	report := cleanReport()
	report.Findings = []validator.Finding{
		{Path: "modules/user", Code: "mirroring_drift", Severity: validator.SeverityWarning, Message: "drift"},
	}

	rec := serve(t, &fakeInspector{report: report}, false, http.MethodGet, "/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Outcome  string              `json:"outcome"`
		Findings []validator.Finding `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pass", body.Outcome)
	assert.Len(t, body.Findings, 1)

	// The same report fails under ?strict=true.
	rec = serve(t, &fakeInspector{report: report}, false, http.MethodGet, "/report?strict=true")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fail", body.Outcome)
}

func TestServer_ReportError(t *testing.T) {
	rec := serve(t, &fakeInspector{err: fmt.Errorf("boom")}, false, http.MethodGet, "/report")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_Units(t *testing.T) {
	rec := serve(t, &fakeInspector{report: cleanReport()}, false, http.MethodGet, "/units")
	require.Equal(t, http.StatusOK, rec.Code)

	var units []graft.UnitSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &units))
	require.Len(t, units, 2)
	assert.Equal(t, "Button", units[0].Name)
}

func TestServer_UnitDetail(t *testing.T) {
	rec := serve(t, &fakeInspector{report: cleanReport()}, false, http.MethodGet, "/units/Panel")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail graft.UnitDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.True(t, detail.Connected)
	require.NotNil(t, detail.Slices)
	assert.Equal(t, []string{"title"}, detail.Slices.State)

	rec = serve(t, &fakeInspector{report: cleanReport()}, false, http.MethodGet, "/units/Ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Graph(t *testing.T) {
	rec := serve(t, &fakeInspector{report: cleanReport()}, false, http.MethodGet, "/graph")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "```mermaid")
	assert.Contains(t, rec.Body.String(), "Panel --> Button")
}

func TestServer_Metrics(t *testing.T) {
	handler := graftHTTP.NewHandler(&fakeInspector{report: cleanReport()}, false)

	// One check first, so the counter has a sample.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `graft_checks_total{outcome="pass"} 1`)
}
