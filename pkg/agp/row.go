package agp

import (
	"sort"
	"strconv"
	"strings"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Row is one AGP line as stored in a file: the object columns plus the
// kind-specific columns. Columns that do not apply to the row's kind are
// left at their zero value.
type Row struct {
	Object string
	Start  int
	End    int
	Part   int
	// Type is the component type column (W, N, U, ...).
	Type string

	// Component columns.
	ComponentID    string
	ComponentStart int
	ComponentEnd   int
	Orientation    string

	// Gap columns.
	GapLength int
	GapType   string
	Linkage   string
	Evidence  string

	// Line is the 1-based source line, used in error messages. Zero when
	// unknown.
	Line int
}

// IsGap reports whether the row describes a gap (type N or U).
func (r Row) IsGap() bool { return r.Type == "N" || r.Type == "U" }

func (r Row) where() string {
	if r.Line > 0 {
		return "line " + strconv.Itoa(r.Line)
	}
	return "object " + r.Object + " part " + strconv.Itoa(r.Part)
}

// Record converts the row into an unpositioned record.
func (r Row) Record() (Record, error) {
	if r.IsGap() {
		linkage, err := parseLinkage(r.Linkage)
		if err != nil {
			return Record{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s", r.where())
		}
		var evidence []string
		if r.Evidence != "" && r.Evidence != "na" {
			evidence = strings.Split(r.Evidence, ";")
		}
		return Record{Payload: Gap{
			Length:   r.GapLength,
			Type:     r.GapType,
			Linkage:  linkage,
			Evidence: evidence,
			Unknown:  r.Type == "U",
		}}, nil
	}
	o, err := ParseOrientation(r.Orientation)
	if err != nil {
		return Record{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s", r.where())
	}
	c := Component{
		ID:          r.ComponentID,
		Start:       r.ComponentStart,
		End:         r.ComponentEnd,
		Orientation: o,
		Type:        r.Type,
	}
	if o == Unknown && r.Orientation != "?" {
		c.token = r.Orientation
	}
	return Record{Payload: c}, nil
}

func parseLinkage(s string) (bool, error) {
	switch s {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, errs.New(errs.ErrCodeInvalidFormat, "invalid linkage %q", s)
}

// Build groups rows by object name in first-seen order, orders each group
// by part number and returns the layout. The coordinates stored in the rows
// must agree with renumbering; a layout whose stored coordinates disagree
// is rejected with INVALID_FORMAT.
func Build(rows []Row) (*Layout, error) {
	var order []string
	groups := make(map[string][]Row)
	for _, r := range rows {
		if _, ok := groups[r.Object]; !ok {
			order = append(order, r.Object)
		}
		groups[r.Object] = append(groups[r.Object], r)
	}

	objects := make([]*Object, 0, len(order))
	for _, name := range order {
		group := groups[name]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Part < group[j].Part })

		records := make([]Record, len(group))
		for i, row := range group {
			rec, err := row.Record()
			if err != nil {
				return nil, err
			}
			records[i] = rec
		}
		obj, err := NewObject(name, records)
		if err != nil {
			return nil, err
		}
		for i, row := range group {
			got := obj.records[i]
			if row.Part != got.Part || row.Start != got.Start || row.End != got.End {
				return nil, errs.New(errs.ErrCodeInvalidFormat,
					"%s: coordinates %d-%d part %d disagree with layout (expected %d-%d part %d)",
					row.where(), row.Start, row.End, row.Part, got.Start, got.End, got.Part)
			}
		}
		objects = append(objects, obj)
	}
	return NewLayout(objects...)
}

// Row converts a positioned record of the named object into a row.
func (r Record) Row(object string) Row {
	row := Row{Object: object, Start: r.Start, End: r.End, Part: r.Part}
	switch p := r.Payload.(type) {
	case Component:
		row.Type = p.TypeLetter()
		row.ComponentID = p.ID
		row.ComponentStart = p.Start
		row.ComponentEnd = p.End
		row.Orientation = p.OrientationToken()
	case Gap:
		row.Type = p.TypeLetter()
		row.GapLength = p.Length
		row.GapType = p.Type
		row.Linkage = p.LinkageToken()
		row.Evidence = p.EvidenceToken()
	}
	return row
}

// Rows flattens the object into rows.
func (o *Object) Rows() []Row {
	rows := make([]Row, len(o.records))
	for i, r := range o.records {
		rows[i] = r.Row(o.name)
	}
	return rows
}

// Rows flattens the layout into rows, object by object.
func (l *Layout) Rows() []Row {
	var rows []Row
	for _, o := range l.objects {
		rows = append(rows, o.Rows()...)
	}
	return rows
}
