package seqstore

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"slices"

	"github.com/matzehuels/agptools/pkg/assemble"
	errs "github.com/matzehuels/agptools/pkg/errors"
	agpio "github.com/matzehuels/agptools/pkg/io"
)

// Memory serves slices of in-memory sequences. It is read-only after
// construction and safe for concurrent use.
type Memory struct {
	seqs   map[string][]byte
	source string
}

// NewMemory wraps a map of component id to sequence. The map is not copied
// and must not be modified afterwards.
func NewMemory(seqs map[string][]byte) *Memory {
	return &Memory{seqs: seqs, source: "mem:" + contentHash(seqs)}
}

// contentHash digests ids and bases in id order, so the same sequences
// hash the same regardless of FASTA line width or record order.
func contentHash(seqs map[string][]byte) string {
	ids := make([]string, 0, len(seqs))
	for id := range seqs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	h := sha256.New()
	var n [8]byte
	for _, id := range ids {
		binary.BigEndian.PutUint64(n[:], uint64(len(id)))
		h.Write(n[:])
		h.Write([]byte(id))
		binary.BigEndian.PutUint64(n[:], uint64(len(seqs[id])))
		h.Write(n[:])
		h.Write(seqs[id])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// LoadFASTA reads every record of a FASTA stream into a Memory store.
// Duplicate ids fail with DUPLICATE_NAME.
func LoadFASTA(r io.Reader) (*Memory, error) {
	recs, err := agpio.ReadFASTA(r)
	if err != nil {
		return nil, err
	}
	seqs := make(map[string][]byte, len(recs))
	for _, rec := range recs {
		if _, ok := seqs[rec.ID]; ok {
			return nil, errs.New(errs.ErrCodeDuplicateName, "sequence %s appears more than once", rec.ID)
		}
		seqs[rec.ID] = rec.Seq
	}
	return NewMemory(seqs), nil
}

// Source identifies the store by its content.
func (m *Memory) Source() string { return m.source }

// Len returns the number of sequences.
func (m *Memory) Len() int { return len(m.seqs) }

// Fetch returns bases [start, end] of id.
func (m *Memory) Fetch(_ context.Context, id string, start, end int) ([]byte, error) {
	seq, ok := m.seqs[id]
	if !ok {
		return nil, errs.New(errs.ErrCodeComponentNotFound, "sequence %s not found", id)
	}
	if err := checkRange(id, start, end, len(seq)); err != nil {
		return nil, err
	}
	out := make([]byte, end-start+1)
	copy(out, seq[start-1:end])
	return out, nil
}

func checkRange(id string, start, end, length int) error {
	if start < 1 || end < start || end > length {
		return errs.New(errs.ErrCodeOutOfRange, "%s:%d-%d is outside the sequence (length %d)", id, start, end, length)
	}
	return nil
}

var (
	_ assemble.SequenceProvider = (*Memory)(nil)
	_ assemble.Sourced          = (*Memory)(nil)
)
