package io

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/agp/transform"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// eachLine calls fn with every non-blank line and its 1-based number.
func eachLine(r io.Reader, fn func(line string, n int) error) error {
	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn(line, n); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// ReadBreakpoints parses a split list: an object name, whitespace, and a
// comma-separated list of breakpoints. Listing an object twice fails with
// DUPLICATE_NAME.
func ReadBreakpoints(r io.Reader) (map[string][]int, error) {
	out := make(map[string][]int)
	err := eachLine(r, func(line string, n int) error {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return errs.New(errs.ErrCodeInvalidFormat, "breakpoints line %d: expected name and breakpoint list", n)
		}
		name := fields[0]
		if _, ok := out[name]; ok {
			return errs.New(errs.ErrCodeDuplicateName, "breakpoints line %d: %s listed more than once", n, name)
		}
		var bps []int
		for _, s := range strings.Split(fields[1], ",") {
			bp, err := strconv.Atoi(s)
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidFormat, err, "breakpoints line %d", n)
			}
			bps = append(bps, bp)
		}
		out[name] = bps
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseMember parses a join member: an object name optionally prefixed by
// '+' or '-'. No prefix means Plus.
func ParseMember(s string) (transform.JoinMember, error) {
	m := transform.JoinMember{Name: s, Orientation: agp.Plus}
	switch {
	case strings.HasPrefix(s, "-"):
		m.Name, m.Orientation = s[1:], agp.Minus
	case strings.HasPrefix(s, "+"):
		m.Name = s[1:]
	}
	if m.Name == "" {
		return m, errs.New(errs.ErrCodeInvalidFormat, "empty object name in join member %q", s)
	}
	return m, nil
}

// ReadJoins parses a join list: comma-separated members, optionally
// followed by a tab and the name of the joined object. An object used more
// than once fails with DUPLICATE_NAME; an invalid name with INVALID_NAME.
func ReadJoins(r io.Reader) ([]transform.JoinGroup, error) {
	var groups []transform.JoinGroup
	seen := make(map[string]int)
	err := eachLine(r, func(line string, n int) error {
		cols := strings.Split(line, "\t")
		var g transform.JoinGroup
		for _, s := range strings.Split(cols[0], ",") {
			m, err := ParseMember(strings.TrimSpace(s))
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidFormat, err, "joins line %d", n)
			}
			if prev, ok := seen[m.Name]; ok {
				return errs.New(errs.ErrCodeDuplicateName, "joins line %d: %s already used on line %d", n, m.Name, prev)
			}
			seen[m.Name] = n
			g.Members = append(g.Members, m)
		}
		if len(cols) > 1 {
			g.Name = strings.TrimSpace(cols[1])
			if err := errs.ValidateObjectName(g.Name); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidName, err, "joins line %d", n)
			}
		}
		groups = append(groups, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// ReadNames parses one object name per line, dropping repeats.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	err := eachLine(r, func(line string, _ int) error {
		if !seen[line] {
			seen[line] = true
			names = append(names, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ReadRenames parses a rename list: old name, new name and an optional
// orientation (+ or -, default +), tab-separated.
func ReadRenames(r io.Reader) ([]transform.RenameEdit, error) {
	var edits []transform.RenameEdit
	err := eachLine(r, func(line string, n int) error {
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return errs.New(errs.ErrCodeInvalidFormat, "renames line %d: expected at least 2 tab-separated columns", n)
		}
		e := transform.RenameEdit{Old: cols[0], New: cols[1], Orientation: agp.Plus}
		if len(cols) >= 3 {
			switch cols[2] {
			case "+":
			case "-":
				e.Orientation = agp.Minus
			default:
				return errs.New(errs.ErrCodeInvalidFormat, "renames line %d: orientation must be + or -, got %q", n, cols[2])
			}
		}
		edits = append(edits, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edits, nil
}
