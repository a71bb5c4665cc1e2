package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Document is a parsed AGP file.
type Document struct {
	// Comments holds the comment lines, including the leading '#'.
	Comments []string
	Layout   *agp.Layout
}

// WithLayout returns a copy of d carrying a different layout.
func (d *Document) WithLayout(l *agp.Layout) *Document {
	return &Document{Comments: d.Comments, Layout: l}
}

const agpColumns = 9

// ReadAGP parses an AGP file from r. ReadAGP does not close r.
func ReadAGP(r io.Reader) (*Document, error) {
	doc := &Document{}
	var rows []agp.Row

	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			doc.Comments = append(doc.Comments, line)
			continue
		}
		row, err := parseAGPLine(line, n)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read agp: %w", err)
	}

	layout, err := agp.Build(rows)
	if err != nil {
		return nil, err
	}
	doc.Layout = layout
	return doc, nil
}

// OpenAGP reads the AGP file at path.
func OpenAGP(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAGP(f)
}

func parseAGPLine(line string, n int) (agp.Row, error) {
	cols := strings.Split(line, "\t")
	for len(cols) > agpColumns && cols[len(cols)-1] == "" {
		cols = cols[:len(cols)-1]
	}
	if len(cols) != agpColumns {
		return agp.Row{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: expected %d tab-separated columns, found %d", n, agpColumns, len(cols))
	}

	ints := make([]int, 0, 5)
	atoi := func(col int) error {
		v, err := strconv.Atoi(cols[col])
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d column %d", n, col+1)
		}
		ints = append(ints, v)
		return nil
	}
	for _, col := range []int{1, 2, 3} {
		if err := atoi(col); err != nil {
			return agp.Row{}, err
		}
	}
	row := agp.Row{
		Object: cols[0],
		Start:  ints[0],
		End:    ints[1],
		Part:   ints[2],
		Type:   cols[4],
		Line:   n,
	}
	if row.Object == "" {
		return agp.Row{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: empty object name", n)
	}

	if row.IsGap() {
		if err := atoi(5); err != nil {
			return agp.Row{}, err
		}
		row.GapLength = ints[3]
		row.GapType = cols[6]
		row.Linkage = cols[7]
		row.Evidence = cols[8]
		return row, nil
	}
	for _, col := range []int{6, 7} {
		if err := atoi(col); err != nil {
			return agp.Row{}, err
		}
	}
	row.ComponentID = cols[5]
	row.ComponentStart = ints[3]
	row.ComponentEnd = ints[4]
	row.Orientation = cols[8]
	return row, nil
}

// WriteAGP writes comments followed by every row of the layout.
func WriteAGP(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for _, c := range doc.Comments {
		fmt.Fprintln(bw, c)
	}
	for _, row := range doc.Layout.Rows() {
		fmt.Fprintln(bw, FormatRow(row))
	}
	return bw.Flush()
}

// FormatRow renders a row as one tab-separated AGP line without newline.
func FormatRow(r agp.Row) string {
	head := fmt.Sprintf("%s\t%d\t%d\t%d\t%s", r.Object, r.Start, r.End, r.Part, r.Type)
	if r.IsGap() {
		return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", head, r.GapLength, r.GapType, r.Linkage, r.Evidence)
	}
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%s", head, r.ComponentID, r.ComponentStart, r.ComponentEnd, r.Orientation)
}

// newScanner returns a line scanner that accepts very long lines; FASTA
// files are often written unwrapped.
func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<30)
	return sc
}
