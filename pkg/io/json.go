package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/agptools/pkg/agp"
)

type jsonLayout struct {
	Objects []jsonObject `json:"objects"`
}

type jsonObject struct {
	Name    string       `json:"name"`
	Length  int          `json:"length"`
	Records []jsonRecord `json:"records"`
}

type jsonRecord struct {
	Part      int            `json:"part"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Type      string         `json:"type"`
	Component *jsonComponent `json:"component,omitempty"`
	Gap       *jsonGap       `json:"gap,omitempty"`
}

type jsonComponent struct {
	ID          string `json:"id"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Orientation string `json:"orientation"`
}

type jsonGap struct {
	Length   int      `json:"length"`
	Type     string   `json:"type"`
	Linkage  bool     `json:"linkage"`
	Evidence []string `json:"evidence,omitempty"`
}

// WriteJSON encodes a layout as indented JSON.
func WriteJSON(w io.Writer, l *agp.Layout) error {
	out := jsonLayout{Objects: make([]jsonObject, 0, l.Len())}
	for _, obj := range l.Objects() {
		jo := jsonObject{Name: obj.Name(), Length: obj.Len()}
		for _, r := range obj.Records() {
			jr := jsonRecord{Part: r.Part, Start: r.Start, End: r.End}
			switch p := r.Payload.(type) {
			case agp.Component:
				jr.Type = p.TypeLetter()
				jr.Component = &jsonComponent{ID: p.ID, Start: p.Start, End: p.End, Orientation: p.OrientationToken()}
			case agp.Gap:
				jr.Type = p.TypeLetter()
				jr.Gap = &jsonGap{Length: p.Length, Type: p.Type, Linkage: p.Linkage, Evidence: p.Evidence}
			}
			jo.Records = append(jo.Records, jr)
		}
		out.Objects = append(out.Objects, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a layout written by WriteJSON. Stored coordinates must
// agree with the records, as for AGP input.
func ReadJSON(r io.Reader) (*agp.Layout, error) {
	var data jsonLayout
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var rows []agp.Row
	for _, o := range data.Objects {
		for _, jr := range o.Records {
			row := agp.Row{Object: o.Name, Start: jr.Start, End: jr.End, Part: jr.Part, Type: jr.Type}
			switch {
			case jr.Gap != nil:
				if row.Type == "" {
					row.Type = "N"
				}
				row.GapLength = jr.Gap.Length
				row.GapType = jr.Gap.Type
				row.Linkage = agp.Gap{Linkage: jr.Gap.Linkage}.LinkageToken()
				row.Evidence = agp.Gap{Evidence: jr.Gap.Evidence}.EvidenceToken()
			case jr.Component != nil:
				if row.Type == "" {
					row.Type = agp.DefaultComponentType
				}
				row.ComponentID = jr.Component.ID
				row.ComponentStart = jr.Component.Start
				row.ComponentEnd = jr.Component.End
				row.Orientation = jr.Component.Orientation
			default:
				return nil, fmt.Errorf("object %s part %d: record has neither component nor gap", o.Name, jr.Part)
			}
			rows = append(rows, row)
		}
	}
	return agp.Build(rows)
}
