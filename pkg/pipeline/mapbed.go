package pipeline

import (
	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/agp/transform"
	errs "github.com/matzehuels/agptools/pkg/errors"
	agpio "github.com/matzehuels/agptools/pkg/io"
)

// MapBED translates BED records on components into records on the objects
// of layout. Name, score and extra columns are carried over; the strand is
// flipped for components placed in reverse.
func MapBED(layout *agp.Layout, recs []agpio.BEDRecord) ([]agpio.BEDRecord, error) {
	m := transform.NewMapper(layout)
	out := make([]agpio.BEDRecord, 0, len(recs))
	for i, rec := range recs {
		if !rec.HasRange {
			return nil, errs.New(errs.ErrCodeInvalidInput, "bed record %d (%s) has no coordinates", i+1, rec.Chrom)
		}
		iv, err := m.MapInterval(transform.BEDInterval{
			Chrom:  rec.Chrom,
			Start:  rec.Start,
			End:    rec.End,
			Strand: rec.Strand,
		})
		if err != nil {
			return nil, err
		}
		rec.Chrom, rec.Start, rec.End, rec.Strand = iv.Chrom, iv.Start, iv.End, iv.Strand
		out = append(out, rec)
	}
	return out, nil
}
