package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Record is one structure read from a Vienna file.
type Record struct {
	Name      string
	Sequence  string
	Structure string
	// Energy is the free energy annotation, if the file carried one.
	Energy *float64
}

// ReadVienna decodes every record in r.
//
// ReadVienna returns an error if a record has no structure line or an
// energy annotation is not a number. It does not validate the structure
// itself; that is the parser's job. ReadVienna does not close r.
func ReadVienna(r io.Reader) ([]Record, error) {
	var (
		records []Record
		name    string
		lines   []string
		started bool
	)

	flush := func() error {
		if !started {
			return nil
		}
		rec, err := newRecord(name, lines)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, ">"):
			if err := flush(); err != nil {
				return nil, err
			}
			name, lines, started = strings.TrimSpace(line[1:]), nil, true
		default:
			lines = append(lines, line)
			started = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no structure records found")
	}
	return records, nil
}

func newRecord(name string, lines []string) (Record, error) {
	rec := Record{Name: name}
	if len(lines) == 0 {
		return rec, errors.New(errors.ErrCodeInvalidInput, "record %q has no structure line", name)
	}

	last := lines[len(lines)-1]
	fields := strings.Fields(last)
	rec.Structure = fields[0]
	if len(fields) > 1 {
		e, err := parseEnergy(strings.Join(fields[1:], ""))
		if err != nil {
			return rec, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %q", name)
		}
		rec.Energy = &e
	}
	rec.Sequence = strings.Join(lines[:len(lines)-1], "")
	return rec, nil
}

// parseEnergy accepts "(-1.20)" and "[-1.20]" as printed by the Vienna tools.
func parseEnergy(s string) (float64, error) {
	if len(s) >= 2 && (s[0] == '(' && s[len(s)-1] == ')' || s[0] == '[' && s[len(s)-1] == ']') {
		s = s[1 : len(s)-1]
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid energy %q", s)
	}
	return e, nil
}

// ImportVienna reads the Vienna file at path.
func ImportVienna(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadVienna(f)
}

// WriteVienna writes records to w in the layout [ReadVienna] reads.
func WriteVienna(w io.Writer, records ...Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if rec.Name != "" {
			fmt.Fprintf(bw, ">%s\n", rec.Name)
		}
		if rec.Sequence != "" {
			fmt.Fprintln(bw, rec.Sequence)
		}
		if rec.Energy != nil {
			fmt.Fprintf(bw, "%s (%.2f)\n", rec.Structure, *rec.Energy)
		} else {
			fmt.Fprintln(bw, rec.Structure)
		}
	}
	return bw.Flush()
}
