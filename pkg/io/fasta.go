package io

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// DefaultLineWidth is the FASTA output wrap width.
const DefaultLineWidth = 60

// FASTARecord is one FASTA entry.
type FASTARecord struct {
	ID          string
	Description string
	Seq         []byte
}

// ReadFASTA parses every record of a FASTA file. Sequence lines are
// concatenated with surrounding whitespace removed.
func ReadFASTA(r io.Reader) ([]FASTARecord, error) {
	var recs []FASTARecord
	cur := -1
	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			header := strings.TrimSpace(string(line[1:]))
			id, desc := header, ""
			if i := strings.IndexAny(header, " \t"); i >= 0 {
				id, desc = header[:i], strings.TrimSpace(header[i+1:])
			}
			if id == "" {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "fasta line %d: empty header", n)
			}
			recs = append(recs, FASTARecord{ID: id, Description: desc})
			cur = len(recs) - 1
			continue
		}
		if cur < 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "fasta line %d: sequence before first header", n)
		}
		recs[cur].Seq = append(recs[cur].Seq, line...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	return recs, nil
}

// OpenFASTA reads the FASTA file at path.
func OpenFASTA(path string) ([]FASTARecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFASTA(f)
}

// WriteFASTA writes records wrapped at width columns. A width of zero or
// less writes each sequence on one line.
func WriteFASTA(w io.Writer, recs []FASTARecord, width int) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		if r.Description != "" {
			fmt.Fprintf(bw, ">%s %s\n", r.ID, r.Description)
		} else {
			fmt.Fprintf(bw, ">%s\n", r.ID)
		}
		seq := r.Seq
		wrap := width
		if wrap <= 0 {
			wrap = len(seq)
		}
		for len(seq) > 0 {
			n := min(wrap, len(seq))
			bw.Write(seq[:n])
			bw.WriteByte('\n')
			seq = seq[n:]
		}
	}
	return bw.Flush()
}
