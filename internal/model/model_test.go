package model

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"Now", StatusNow},
		{"now", StatusNow},
		{"  NOW  ", StatusNow},
		{"Available", StatusNow},
		{"yes", StatusNow},
		{"✅", StatusNow},
		{"✅ Now", StatusNow},
		{"✅ Now (agent)", StatusNow},
		{"Partial", StatusPartial},
		{"⚡ Partial", StatusPartial},
		{"⚡", StatusPartial},
		{"Roadmap", StatusRoadmap},
		{"planned", StatusRoadmap},
		{"Future", StatusRoadmap},
		{"\U0001f5fa️ Roadmap", StatusRoadmap},
		{"\U0001f5fa", StatusRoadmap},
	}
	for _, tt := range tests {
		got, err := NormalizeStatus(tt.in)
		if err != nil {
			t.Errorf("NormalizeStatus(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatusUnknown(t *testing.T) {
	for _, in := range []string{"", "maybe", "n/a", "✓ done"} {
		if _, err := NormalizeStatus(in); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("NormalizeStatus(%q): want ErrUnknownStatus, got %v", in, err)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusNow.Display(); got != "✅ Now" {
		t.Errorf("Display = %q", got)
	}
	if got := StatusPartial.Display(); got != "⚡ Partial" {
		t.Errorf("Display = %q", got)
	}
	if got := StatusRoadmap.Display(); got != "\U0001f5fa Roadmap" {
		t.Errorf("Display = %q", got)
	}
}

func TestNewRequirement(t *testing.T) {
	req, err := NewRequirement("  Process monitoring ", " agent telemetry ", "Partial", " Agent ")
	if err != nil {
		t.Fatalf("NewRequirement: %v", err)
	}
	if req.Name != "Process monitoring" || req.Description != "agent telemetry" || req.Signal != "Agent" {
		t.Errorf("fields not trimmed: %+v", req)
	}
	if req.Status != StatusPartial {
		t.Errorf("Status = %v, want StatusPartial", req.Status)
	}

	if _, err := NewRequirement("X", "", "unknown-status", ""); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("want ErrUnknownStatus, got %v", err)
	}
}

func mustReq(t *testing.T, name, status string) Requirement {
	t.Helper()
	r, err := NewRequirement(name, "", status, "")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestCoverage(t *testing.T) {
	d := Domain{Name: "Endpoint", Requirements: []Requirement{
		mustReq(t, "a", "Now"),
		mustReq(t, "b", "Now"),
		mustReq(t, "c", "Now"),
		mustReq(t, "d", "Now"),
		mustReq(t, "e", "Partial"),
	}}
	st := Coverage(d)
	if st.Total != 5 || st.Now != 4 || st.Partial != 1 || st.Roadmap != 0 {
		t.Fatalf("counts: %+v", st)
	}
	if st.CoveragePercent != 80 {
		t.Errorf("CoveragePercent = %d, want 80", st.CoveragePercent)
	}
}

func TestCoverageRounding(t *testing.T) {
	d := Domain{Name: "Net", Requirements: []Requirement{
		mustReq(t, "a", "Now"),
		mustReq(t, "b", "Roadmap"),
		mustReq(t, "c", "Roadmap"),
	}}
	if got := Coverage(d).CoveragePercent; got != 33 {
		t.Errorf("CoveragePercent = %d, want 33", got)
	}
}

func TestCoverageEmptyDomain(t *testing.T) {
	st := Coverage(Domain{Name: "Empty"})
	if st.CoveragePercent != 0 || st.Total != 0 {
		t.Errorf("empty domain: %+v", st)
	}
}

func TestAggregate(t *testing.T) {
	domains := []Domain{
		{Name: "A", Requirements: []Requirement{mustReq(t, "a", "Now"), mustReq(t, "b", "Partial")}},
		{Name: "B", Requirements: []Requirement{mustReq(t, "c", "Now"), mustReq(t, "d", "Roadmap")}},
	}
	agg := Aggregate(CoverageAll(domains))
	if agg.DomainName != "TOTAL" {
		t.Errorf("DomainName = %q", agg.DomainName)
	}
	if agg.Total != 4 || agg.Now != 2 || agg.Partial != 1 || agg.Roadmap != 1 {
		t.Fatalf("counts: %+v", agg)
	}
	if agg.CoveragePercent != 50 {
		t.Errorf("CoveragePercent = %d, want 50", agg.CoveragePercent)
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg.Total != 0 || agg.CoveragePercent != 0 {
		t.Errorf("empty aggregate: %+v", agg)
	}
}
