package io

import (
	"bytes"
	"strings"
	"testing"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

func TestJSONRoundTrip(t *testing.T) {
	doc, err := ReadAGP(strings.NewReader(sampleAGP))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc.Layout); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"orientation": "-"`) {
		t.Errorf("WriteJSON() output missing orientation:\n%s", buf.String())
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	got, want := back.Rows(), doc.Layout.Rows()
	if len(got) != len(want) {
		t.Fatalf("ReadJSON() rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"objects": [`},
		{"empty record", `{"objects":[{"name":"s","records":[{"part":1,"start":1,"end":5}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadJSON() should fail")
			}
		})
	}

	bad := `{"objects":[{"name":"s","records":[{"part":1,"start":2,"end":6,"type":"W","component":{"id":"a","start":1,"end":5,"orientation":"+"}}]}]}`
	if _, err := ReadJSON(strings.NewReader(bad)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(bad coordinates) error = %v, want INVALID_FORMAT", err)
	}
}
