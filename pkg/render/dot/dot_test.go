package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
)

func sampleLayout(t *testing.T) *agp.Layout {
	t.Helper()
	a, err := agp.NewObject("scaffold_1", []agp.Record{
		agp.NewComponentRecord("ctg1", 1, 10, agp.Plus),
		agp.NewGapRecord(5, "scaffold", true, "paired-ends"),
		agp.NewComponentRecord("ctg2", 1, 8, agp.Minus),
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := agp.NewObject("scaffold_2", []agp.Record{agp.NewComponentRecord("ctg3", 1, 6, agp.Unknown)})
	if err != nil {
		t.Fatal(err)
	}
	l, err := agp.NewLayout(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleLayout(t), Options{})

	for _, want := range []string{
		"digraph G",
		"subgraph cluster_0",
		`label="scaffold_1 (23 bp)"`,
		`"scaffold_1#1" -> "scaffold_1#2" -> "scaffold_1#3"`,
		`label="ctg2 -\n1-8"`,
		`label="N 5"`,
		"subgraph cluster_1",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if strings.Contains(dot, `"scaffold_2#1" ->`) {
		t.Error("ToDOT() single-record object should have no edges")
	}
}

func TestToDOT_Orientation(t *testing.T) {
	dot := ToDOT(sampleLayout(t), Options{})
	if !strings.Contains(dot, `fillcolor="#ffe2cc"`) {
		t.Error("ToDOT() missing fill for minus component")
	}
	if !strings.Contains(dot, `fillcolor="#d8ecff"`) {
		t.Error("ToDOT() missing fill for plus component")
	}
	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() gaps should be dashed")
	}
}

func TestToDOT_Options(t *testing.T) {
	dot := ToDOT(sampleLayout(t), Options{Objects: []string{"scaffold_2", "missing"}, Detailed: true})
	if strings.Contains(dot, "scaffold_1") {
		t.Error("ToDOT() should only include selected objects")
	}
	if !strings.Contains(dot, `[1-6]`) {
		t.Error("ToDOT() detailed output missing object coordinates")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave svg without viewBox unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	if _, err := Render(context.Background(), sampleLayout(t), Options{}, "gif"); err == nil {
		t.Error("Render(gif) should fail")
	}
}
