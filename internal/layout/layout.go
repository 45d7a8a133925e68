// Package layout parses fixed-width layout descriptors for coded survey
// extracts. A descriptor lists one field per line in SAS input-statement
// style:
//
//	@1   RELIG    2.
//	@3   CONSTIT  $2.
//	@5   ORGMEM1  $24.
//
// Positions are 1-based; a leading $ on the width marks a character field
// (ignored here, every field is extracted as text). Blank lines and lines
// starting with '*' are skipped.
package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Field describes one column of the fixed-width extract.
type Field struct {
	Name  string
	Start int // 0-based byte offset
	Width int
}

// Layout is an ordered set of fields from one descriptor file.
type Layout struct {
	Fields []Field
	byName map[string]int
}

// ParseFile reads and parses a layout descriptor from disk.
func ParseFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout descriptor: %w", err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing layout descriptor %s: %w", path, err)
	}
	return l, nil
}

// Parse parses a layout descriptor.
func Parse(r io.Reader) (*Layout, error) {
	l := &Layout{byName: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		f, err := parseField(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, dup := l.byName[f.Name]; dup {
			return nil, fmt.Errorf("line %d: duplicate field %s", lineNo, f.Name)
		}
		l.byName[f.Name] = len(l.Fields)
		l.Fields = append(l.Fields, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading layout descriptor: %w", err)
	}

	if len(l.Fields) == 0 {
		return nil, fmt.Errorf("layout descriptor defines no fields")
	}
	return l, nil
}

func parseField(line string) (Field, error) {
	toks := strings.Fields(line)
	if len(toks) < 3 {
		return Field{}, fmt.Errorf("malformed field statement %q", line)
	}

	pos := strings.TrimPrefix(toks[0], "@")
	start, err := strconv.Atoi(pos)
	if err != nil || start < 1 {
		return Field{}, fmt.Errorf("bad position %q", toks[0])
	}

	w := strings.TrimPrefix(toks[2], "$")
	// Widths may carry a SAS-style trailing period or decimal part (e.g. "8.2").
	if i := strings.IndexByte(w, '.'); i >= 0 {
		w = w[:i]
	}
	width, err := strconv.Atoi(w)
	if err != nil || width < 1 {
		return Field{}, fmt.Errorf("bad width %q", toks[2])
	}

	return Field{Name: toks[1], Start: start - 1, Width: width}, nil
}

// Extract returns the trimmed value of field i from a raw record line.
// A line too short to cover the field yields an empty value.
func (l *Layout) Extract(line string, i int) string {
	f := l.Fields[i]
	if f.Start >= len(line) {
		return ""
	}
	end := f.Start + f.Width
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[f.Start:end])
}
