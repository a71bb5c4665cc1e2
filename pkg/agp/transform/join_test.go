package transform

import (
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

func TestSuperscaffoldName(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"scaffold_1", "scaffold_2", "scaffold_3"}, "scaffold_1p2p3"},
		{[]string{"Scaffold_12.1", "Scaffold_7"}, "Scaffold_12.1p7"},
		{[]string{"scaffold_1", "contig_2"}, "scaffold_1pcontig_2"},
		{[]string{"tig1", "tig2"}, "tig1ptig2"},
		{[]string{"scaffold_1"}, "scaffold_1"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := SuperscaffoldName(tt.names); got != tt.want {
			t.Errorf("SuperscaffoldName(%v) = %s, want %s", tt.names, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	a := mustObject(t, "scaffold_1", comp("x", 1, 10, agp.Plus), gap(5), comp("y", 1, 20, agp.Minus))
	b := mustObject(t, "scaffold_2", comp("z", 1, 30, agp.Plus))

	got, err := Join([]Part{{a, agp.Minus}, {b, agp.Plus}}, DefaultGapSpec, "")
	if err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if got.Name() != "scaffold_1p2" {
		t.Errorf("Join() name = %s, want scaffold_1p2", got.Name())
	}
	if want := "y+ [5] x- [500] z+"; describe(got) != want {
		t.Errorf("Join() = %s, want %s", describe(got), want)
	}
	if got.Len() != a.Len()+500+b.Len() {
		t.Errorf("Join() Len = %d, want %d", got.Len(), a.Len()+500+b.Len())
	}
	g, _ := got.Record(3).Gap()
	if g.Type != "scaffold" || !g.Linkage || g.EvidenceToken() != "na" {
		t.Errorf("Join() gap = %+v, want default scaffold gap", g)
	}
	if err := got.Validate(); err != nil {
		t.Error(err)
	}

	named, err := Join([]Part{{b, agp.Plus}}, DefaultGapSpec, "chr1")
	if err != nil || named.Name() != "chr1" || named.Count() != 1 {
		t.Errorf("Join(single, chr1) = %v, %v", named, err)
	}
}

func TestJoinErrors(t *testing.T) {
	a := mustObject(t, "a", comp("x", 1, 10, agp.Plus))
	tests := []struct {
		name  string
		parts []Part
		gap   GapSpec
		join  string
		code  errs.Code
	}{
		{"no parts", nil, DefaultGapSpec, "", errs.ErrCodeEmptyObject},
		{"zero gap", []Part{{a, agp.Plus}}, GapSpec{Type: "scaffold"}, "", errs.ErrCodeInvalidInput},
		{"bad name", []Part{{a, agp.Plus}}, DefaultGapSpec, "chr 1", errs.ErrCodeInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Join(tt.parts, tt.gap, tt.join)
			if !errs.Is(err, tt.code) {
				t.Errorf("Join() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestJoinLayout(t *testing.T) {
	a := mustObject(t, "scaffold_1", comp("x", 1, 10, agp.Plus))
	b := mustObject(t, "scaffold_2", comp("y", 1, 10, agp.Plus))
	c := mustObject(t, "scaffold_3", comp("z", 1, 10, agp.Plus))
	d := mustObject(t, "scaffold_4", comp("w", 1, 10, agp.Plus))
	l := mustLayout(t, a, b, c, d)

	groups := []JoinGroup{
		{Members: []JoinMember{{"scaffold_3", agp.Plus}, {"scaffold_1", agp.Minus}}},
		{Members: []JoinMember{{"scaffold_4", agp.Plus}}, Name: "chr4"},
	}
	got, err := JoinLayout(l, groups, GapSpec{Length: 100, Type: "contig"})
	if err != nil {
		t.Fatalf("JoinLayout() error: %v", err)
	}
	checkInvariants(t, got)
	names := got.Names()
	want := []string{"scaffold_2", "scaffold_3p1", "chr4"}
	if len(names) != len(want) {
		t.Fatalf("JoinLayout() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("JoinLayout() names = %v, want %v", names, want)
			break
		}
	}
	j, _ := got.Get("scaffold_3p1")
	if describe(j) != "z+ [100] x-" {
		t.Errorf("joined = %s, want z+ [100] x-", describe(j))
	}

	errTests := []struct {
		name   string
		groups []JoinGroup
		code   errs.Code
	}{
		{"reused member", []JoinGroup{
			{Members: []JoinMember{{"scaffold_1", agp.Plus}, {"scaffold_2", agp.Plus}}},
			{Members: []JoinMember{{"scaffold_2", agp.Plus}}},
		}, errs.ErrCodeDuplicateName},
		{"unknown member", []JoinGroup{{Members: []JoinMember{{"scaffold_9", agp.Plus}}}}, errs.ErrCodeUnknownObject},
		{"name collision", []JoinGroup{{Members: []JoinMember{{"scaffold_1", agp.Plus}}, Name: "scaffold_2"}}, errs.ErrCodeDuplicateName},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JoinLayout(l, tt.groups, DefaultGapSpec)
			if !errs.Is(err, tt.code) {
				t.Errorf("JoinLayout() error = %v, want %s", err, tt.code)
			}
		})
	}
}
