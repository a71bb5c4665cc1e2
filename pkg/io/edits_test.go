package io

import (
	"strings"
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

func TestReadBreakpoints(t *testing.T) {
	got, err := ReadBreakpoints(strings.NewReader("scaffold_1\t100,200\n\nscaffold_2 4258995\n"))
	if err != nil {
		t.Fatalf("ReadBreakpoints() error: %v", err)
	}
	if bps := got["scaffold_1"]; len(bps) != 2 || bps[0] != 100 || bps[1] != 200 {
		t.Errorf("scaffold_1 = %v", bps)
	}
	if bps := got["scaffold_2"]; len(bps) != 1 || bps[0] != 4258995 {
		t.Errorf("scaffold_2 = %v", bps)
	}

	tests := []struct {
		in   string
		code errs.Code
	}{
		{"a\t1\na\t2\n", errs.ErrCodeDuplicateName},
		{"a\t1,x\n", errs.ErrCodeInvalidFormat},
		{"a\n", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		if _, err := ReadBreakpoints(strings.NewReader(tt.in)); !errs.Is(err, tt.code) {
			t.Errorf("ReadBreakpoints(%q) error = %v, want %s", tt.in, err, tt.code)
		}
	}
}

func TestReadJoins(t *testing.T) {
	in := "scaffold_1,-scaffold_2,+scaffold_3\n" +
		"scaffold_4,scaffold_5\tchr_5\n"
	groups, err := ReadJoins(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJoins() error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("ReadJoins() returned %d groups, want 2", len(groups))
	}
	g := groups[0]
	if len(g.Members) != 3 || g.Name != "" {
		t.Fatalf("group 0 = %+v", g)
	}
	if m := g.Members[1]; m.Name != "scaffold_2" || m.Orientation != agp.Minus {
		t.Errorf("member 1 = %+v", m)
	}
	if m := g.Members[2]; m.Name != "scaffold_3" || m.Orientation != agp.Plus {
		t.Errorf("member 2 = %+v", m)
	}
	if groups[1].Name != "chr_5" {
		t.Errorf("group 1 name = %s", groups[1].Name)
	}

	tests := []struct {
		in   string
		code errs.Code
	}{
		{"a,b\nb,c\n", errs.ErrCodeDuplicateName},
		{"a,-a\n", errs.ErrCodeDuplicateName},
		{"a,b\tbad|name\n", errs.ErrCodeInvalidName},
		{"a,,b\n", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		if _, err := ReadJoins(strings.NewReader(tt.in)); !errs.Is(err, tt.code) {
			t.Errorf("ReadJoins(%q) error = %v, want %s", tt.in, err, tt.code)
		}
	}
}

func TestReadNames(t *testing.T) {
	got, err := ReadNames(strings.NewReader("a\n\nb\na\n  c  \n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("ReadNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReadNames() = %v, want %v", got, want)
		}
	}
}

func TestReadRenames(t *testing.T) {
	edits, err := ReadRenames(strings.NewReader("scaffold_1\tchr1\nscaffold_2\tchr2\t-\nscaffold_3\tchr3\t+\n"))
	if err != nil {
		t.Fatalf("ReadRenames() error: %v", err)
	}
	want := []struct {
		old, new string
		ori      agp.Orientation
	}{
		{"scaffold_1", "chr1", agp.Plus},
		{"scaffold_2", "chr2", agp.Minus},
		{"scaffold_3", "chr3", agp.Plus},
	}
	for i, w := range want {
		e := edits[i]
		if e.Old != w.old || e.New != w.new || e.Orientation != w.ori {
			t.Errorf("edit %d = %+v, want %+v", i, e, w)
		}
	}

	for _, in := range []string{"scaffold_1\n", "a\tb\tx\n", "a\tb\n\nc\n"} {
		_, err := ReadRenames(strings.NewReader(in))
		if !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ReadRenames(%q) error = %v, want INVALID_FORMAT", in, err)
		}
	}
	_, err = ReadRenames(strings.NewReader("a\tb\n\nc\n"))
	if !strings.Contains(errs.UserMessage(err), "line 3") {
		t.Errorf("ReadRenames() error %q should name line 3", errs.UserMessage(err))
	}
}
