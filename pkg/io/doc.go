// Package io reads and writes the file formats agptools works with.
//
// # AGP
//
// [ReadAGP] tokenizes an AGP 2.x file into [agp.Row] values and groups them
// into a layout with [agp.Build]. Comment lines (starting with '#') are kept
// in [Document.Comments] and written back first by [WriteAGP]. Each line
// must have nine tab-separated columns:
//
//	object  begin  end  part  type  id|gap_length  beg|gap_type  end|linkage  orientation|evidence
//
// Component type N or U marks a gap row. Malformed lines fail with an
// INVALID_FORMAT error naming the line number.
//
// # BED
//
// [ReadBED] parses BED intervals. A line holding only a name is a
// whole-object record ([BEDRecord.HasRange] is false); flip uses those to
// mean "the entire object".
//
// # FASTA
//
// [ReadFASTA] and [WriteFASTA] handle multi-record FASTA. The record id is
// the first whitespace-separated token of the header. Output is wrapped at
// a configurable width (60 by default).
//
// # Edit Lists
//
// The tab-separated edit lists driving each command:
//
//	split:   name<TAB>bp,bp,...                  [ReadBreakpoints]
//	join:    [+-]a,[+-]b,...[<TAB>name]          [ReadJoins]
//	remove:  name                                [ReadNames]
//	rename:  old<TAB>new[<TAB>+|-]               [ReadRenames]
//
// Blank lines are skipped everywhere.
//
// # JSON
//
// [WriteJSON] and [ReadJSON] exchange layouts with external tools:
//
//	{
//	  "objects": [
//	    {
//	      "name": "scaffold_1",
//	      "length": 1600,
//	      "records": [
//	        {"part": 1, "start": 1, "end": 1000, "type": "W",
//	         "component": {"id": "tig1", "start": 1, "end": 1000, "orientation": "+"}},
//	        {"part": 2, "start": 1001, "end": 1100, "type": "N",
//	         "gap": {"length": 100, "type": "scaffold", "linkage": true, "evidence": ["paired-ends"]}}
//	      ]
//	    }
//	  ]
//	}
//
// Imported layouts go through the same coordinate checks as AGP input.
//
// # Output
//
// [CreateAtomic] writes a file through a uniquely named temporary file in
// the same directory and renames it into place on Commit, so an interrupted
// run never leaves a truncated AGP behind.
package io
