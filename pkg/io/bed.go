package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// BEDRecord is one BED line. Start and End are 0-based, half-open. A record
// without coordinates (a bare name) has HasRange false.
type BEDRecord struct {
	Chrom    string
	Start    int
	End      int
	HasRange bool
	Name     string
	Score    string
	Strand   string
	// Extra holds columns after the strand, written back unchanged.
	Extra []string
}

// ReadBED parses BED records. Blank lines, comments and track/browser lines
// are skipped.
func ReadBED(r io.Reader) ([]BEDRecord, error) {
	var recs []BEDRecord
	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		cols := strings.Split(line, "\t")
		rec := BEDRecord{Chrom: cols[0]}
		switch {
		case len(cols) == 1:
		case len(cols) == 2:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "bed line %d: start without end", n)
		default:
			start, err := strconv.Atoi(cols[1])
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "bed line %d start", n)
			}
			end, err := strconv.Atoi(cols[2])
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "bed line %d end", n)
			}
			if start < 0 || end < start {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "bed line %d: invalid interval %d-%d", n, start, end)
			}
			rec.Start, rec.End, rec.HasRange = start, end, true
			rest := cols[3:]
			if len(rest) >= 3 {
				rec.Name, rec.Score, rec.Strand = rest[0], rest[1], rest[2]
				rest = rest[3:]
			}
			if len(rest) > 0 {
				rec.Extra = rest
			}
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read bed: %w", err)
	}
	return recs, nil
}

// WriteBED writes records in the column layout they were read with.
func WriteBED(w io.Writer, recs []BEDRecord) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		cols := []string{r.Chrom}
		if r.HasRange {
			cols = append(cols, strconv.Itoa(r.Start), strconv.Itoa(r.End))
			if r.Name != "" || r.Score != "" || r.Strand != "" {
				cols = append(cols, r.Name, r.Score, r.Strand)
			}
			cols = append(cols, r.Extra...)
		}
		fmt.Fprintln(bw, strings.Join(cols, "\t"))
	}
	return bw.Flush()
}
