// Package pkg provides the libraries behind agptools, a toolkit for editing
// AGP genome layouts.
//
// # Overview
//
// An AGP file describes how objects (scaffolds, chromosomes) are built from
// components (contigs) and gaps. The pkg directory is organized into:
//
//  1. [agp] - the record model and coordinate engine
//  2. [agp/transform] - flip, split, join, remove, rename, compose, mapping
//  3. [assemble] - building object sequences from component sequences
//  4. [io] - AGP, BED, FASTA, JSON and edit-list readers and writers
//  5. [seqstore] and [cache] - sequence providers and byte caches
//  6. [pipeline] - orchestration (load → edit → write)
//  7. [render/dot] - Graphviz diagrams of layouts
//
// # Architecture
//
//	AGP file
//	    ↓
//	[io] ReadAGP
//	    ↓
//	[agp] Layout (validated, renumbered)
//	    ↓
//	[agp/transform] edit
//	    ↓
//	[io] WriteAGP / [assemble] FASTA
//
// # Quick Start
//
//	doc, _ := io.OpenAGP("scaffolds.agp")
//	obj, _ := doc.Layout.Get("scaffold_18")
//	flipped, _ := transform.Flip(obj, 1, obj.Len())
//
// [agp]: github.com/matzehuels/agptools/pkg/agp
// [agp/transform]: github.com/matzehuels/agptools/pkg/agp/transform
// [assemble]: github.com/matzehuels/agptools/pkg/assemble
// [io]: github.com/matzehuels/agptools/pkg/io
// [seqstore]: github.com/matzehuels/agptools/pkg/seqstore
// [cache]: github.com/matzehuels/agptools/pkg/cache
// [pipeline]: github.com/matzehuels/agptools/pkg/pipeline
// [render/dot]: github.com/matzehuels/agptools/pkg/render/dot
package pkg
