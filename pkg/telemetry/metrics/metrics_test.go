package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_Exposition(t *testing.T) {
	m := New()

	m.ObserveAdmission(50 * time.Millisecond)
	m.ObserveAdmission(120 * time.Millisecond)
	m.SetInWindow(7)
	m.ObserveSubmission("json", "ok", 200*time.Millisecond)
	m.ObserveSubmission("xml", "rejected", 90*time.Millisecond)
	m.SetSpoolPending(3)
	m.RegisterJournalDropped(func() int64 { return 4 })

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"crptgate_ratelimit_admissions_total 2",
		"crptgate_ratelimit_in_window 7",
		`crptgate_submissions_total{format="json",outcome="ok"} 1`,
		`crptgate_submissions_total{format="xml",outcome="rejected"} 1`,
		"crptgate_spool_pending 3",
		"crptgate_journal_dropped_total 4",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Exposition missing %q:\n%s", want, body)
		}
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New()
	b := New()

	a.ObserveAdmission(time.Millisecond)
	b.ObserveAdmission(time.Millisecond)
	b.ObserveAdmission(time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "crptgate_ratelimit_admissions_total 1") {
		t.Error("Registry a should count exactly its own admissions")
	}
}
