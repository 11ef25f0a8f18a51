package problems_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/sallehub/internal/app/features/problems"
	auditstore "github.com/dalemusser/sallehub/internal/app/store/audit"
	problemstore "github.com/dalemusser/sallehub/internal/app/store/problems"
	"github.com/dalemusser/sallehub/internal/app/system/auditlog"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/dalemusser/sallehub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *problems.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return problems.NewHandler(
		problemstore.New(db),
		auditlog.New(auditstore.New(db), zap.NewNop()),
		zap.NewNop(),
	)
}

func postJSON(h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestReport_CreatesProblem(t *testing.T) {
	h := newHandler(t)

	rec := postJSON(h.Report, "/problems",
		`{"room":"DIA-SN 4","description":"projector shows no signal","priority":"Urgent"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var p models.ReportedProblem
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID == "" {
		t.Error("problem created without an id")
	}
	if p.Status != models.ProblemReported {
		t.Errorf("status = %q, want %q", p.Status, models.ProblemReported)
	}
}

func TestReport_SanitizesDescription(t *testing.T) {
	h := newHandler(t)

	rec := postJSON(h.Report, "/problems",
		`{"room":"DIA-SN 4","description":"<script>alert(1)</script>broken outlet","priority":"Important"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var p models.ReportedProblem
	json.NewDecoder(rec.Body).Decode(&p)
	if strings.Contains(p.Description, "alert") || strings.ContainsAny(p.Description, "<>") {
		t.Errorf("description not sanitized: %q", p.Description)
	}
	if !strings.Contains(p.Description, "broken outlet") {
		t.Errorf("description text lost: %q", p.Description)
	}
}

func TestReport_Rejections(t *testing.T) {
	h := newHandler(t)

	cases := []struct {
		name, body string
	}{
		{"unknown room", `{"room":"DIA-SN 99","description":"x","priority":"Urgent"}`},
		{"bad priority", `{"room":"DIA-SN 1","description":"x","priority":"Whenever"}`},
		{"empty description", `{"room":"DIA-SN 1","description":"  ","priority":"Urgent"}`},
		{"bad body", `{nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := postJSON(h.Report, "/problems", tc.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestList_ReturnsActive(t *testing.T) {
	h := newHandler(t)

	postJSON(h.Report, "/problems", `{"room":"DIA-SN 1","description":"one","priority":"Important"}`)
	postJSON(h.Report, "/problems", `{"room":"DIA-SDC 2","description":"two","priority":"Urgent"}`)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/problems", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var list []models.ReportedProblem
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("problems = %d, want 2", len(list))
	}
}

func TestUpdateStatus_HandledRemoves(t *testing.T) {
	h := newHandler(t)

	rec := postJSON(h.Report, "/problems", `{"room":"DIA-SN 1","description":"one","priority":"Important"}`)
	var p models.ReportedProblem
	json.NewDecoder(rec.Body).Decode(&p)

	req := httptest.NewRequest(http.MethodPost, "/problems/"+p.ID+"/status", strings.NewReader(`{"status":"Handled"}`))
	req = testutil.WithChiURLParam(req, "id", p.ID)
	upd := httptest.NewRecorder()
	h.UpdateStatus(upd, req)
	if upd.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", upd.Code, upd.Body)
	}

	listRec := httptest.NewRecorder()
	h.List(listRec, httptest.NewRequest(http.MethodGet, "/problems", nil))
	var list []models.ReportedProblem
	json.NewDecoder(listRec.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("handled problem still listed: %+v", list)
	}
}

func TestUpdateStatus_Unknown(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/problems/ghost/status", strings.NewReader(`{"status":"Waiting"}`))
	req = testutil.WithChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdateStatus_BadStatus(t *testing.T) {
	h := newHandler(t)

	rec := postJSON(h.Report, "/problems", `{"room":"DIA-SN 1","description":"one","priority":"Important"}`)
	var p models.ReportedProblem
	json.NewDecoder(rec.Body).Decode(&p)

	req := httptest.NewRequest(http.MethodPost, "/problems/"+p.ID+"/status", strings.NewReader(`{"status":"Done"}`))
	req = testutil.WithChiURLParam(req, "id", p.ID)
	upd := httptest.NewRecorder()
	h.UpdateStatus(upd, req)
	if upd.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", upd.Code, http.StatusBadRequest)
	}
}
