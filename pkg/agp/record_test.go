package agp

import (
	"testing"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"+", Plus, false},
		{"-", Minus, false},
		{"?", Unknown, false},
		{"0", Unknown, false},
		{"na", Unknown, false},
		{"", Unknown, true},
		{"x", Unknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientationFlip(t *testing.T) {
	for _, o := range []Orientation{Plus, Minus, Unknown} {
		if got := o.Flip().Flip(); got != o {
			t.Errorf("%v.Flip().Flip() = %v, want %v", o, got, o)
		}
	}
	if Plus.Flip() != Minus || Minus.Flip() != Plus {
		t.Error("Flip() should swap Plus and Minus")
	}
	if Unknown.Flip() != Unknown {
		t.Error("Unknown.Flip() should be Unknown")
	}
}

func TestRenumber(t *testing.T) {
	recs := []Record{
		NewComponentRecord("a", 1, 100, Plus),
		NewGapRecord(50, "scaffold", true),
		NewComponentRecord("b", 11, 30, Minus),
	}
	got, err := Renumber(recs)
	if err != nil {
		t.Fatalf("Renumber() error: %v", err)
	}
	want := [][3]int{{1, 1, 100}, {2, 101, 150}, {3, 151, 170}}
	for i, w := range want {
		r := got[i]
		if r.Part != w[0] || r.Start != w[1] || r.End != w[2] {
			t.Errorf("record %d = part %d [%d,%d], want part %d [%d,%d]", i, r.Part, r.Start, r.End, w[0], w[1], w[2])
		}
	}
	if recs[0].Part != 0 {
		t.Error("Renumber() should not modify its input")
	}
}

func TestRenumberEmpty(t *testing.T) {
	_, err := Renumber(nil)
	if !errs.Is(err, errs.ErrCodeEmptyObject) {
		t.Errorf("Renumber(nil) error = %v, want EMPTY_OBJECT", err)
	}
}

func TestReverseSpan(t *testing.T) {
	recs := []Record{
		NewComponentRecord("a", 1, 10, Plus),
		NewGapRecord(5, "scaffold", true, "paired-ends"),
		NewComponentRecord("b", 1, 20, Unknown),
		NewComponentRecord("c", 1, 30, Minus),
	}
	got := ReverseSpan(recs)

	tests := []struct {
		id  string
		ori Orientation
		gap bool
	}{
		{id: "c", ori: Plus},
		{id: "b", ori: Unknown},
		{gap: true},
		{id: "a", ori: Minus},
	}
	for i, tt := range tests {
		if tt.gap {
			g, ok := got[i].Gap()
			if !ok || g.Length != 5 || g.EvidenceToken() != "paired-ends" {
				t.Errorf("ReverseSpan()[%d] = %+v, want unchanged gap", i, got[i].Payload)
			}
			continue
		}
		c, ok := got[i].Component()
		if !ok {
			t.Fatalf("ReverseSpan()[%d] is not a component", i)
		}
		if c.ID != tt.id || c.Orientation != tt.ori {
			t.Errorf("ReverseSpan()[%d] = %s %v, want %s %v", i, c.ID, c.Orientation, tt.id, tt.ori)
		}
	}
	if c, _ := recs[0].Component(); c.Orientation != Plus {
		t.Error("ReverseSpan() should not modify its input")
	}
}

func TestReverseSpanInvolution(t *testing.T) {
	recs := []Record{
		NewComponentRecord("a", 1, 10, Plus),
		NewGapRecord(5, "contig", false),
		NewComponentRecord("b", 1, 20, Minus),
	}
	twice := ReverseSpan(ReverseSpan(recs))
	for i := range recs {
		a, _ := recs[i].Component()
		b, _ := twice[i].Component()
		if a.ID != b.ID || a.Orientation != b.Orientation || recs[i].Len() != twice[i].Len() {
			t.Errorf("ReverseSpan twice [%d] = %+v, want %+v", i, twice[i].Payload, recs[i].Payload)
		}
	}
}

func TestGapTokens(t *testing.T) {
	tests := []struct {
		gap                    Gap
		letter, link, evidence string
	}{
		{Gap{Length: 100, Type: "scaffold", Linkage: true}, "N", "yes", "na"},
		{Gap{Length: 100, Type: "contig", Unknown: true}, "U", "no", "na"},
		{Gap{Length: 5, Type: "scaffold", Linkage: true, Evidence: []string{"paired-ends", "map"}}, "N", "yes", "paired-ends;map"},
	}
	for _, tt := range tests {
		if got := tt.gap.TypeLetter(); got != tt.letter {
			t.Errorf("TypeLetter() = %s, want %s", got, tt.letter)
		}
		if got := tt.gap.LinkageToken(); got != tt.link {
			t.Errorf("LinkageToken() = %s, want %s", got, tt.link)
		}
		if got := tt.gap.EvidenceToken(); got != tt.evidence {
			t.Errorf("EvidenceToken() = %s, want %s", got, tt.evidence)
		}
	}
}
