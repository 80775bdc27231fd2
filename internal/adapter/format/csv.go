package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"grimoire/internal/domain"
)

// CSVWriter emits one header row of canonical field names followed by one
// row per spell. Embedded commas and newlines get standard CSV quoting.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(s domain.Spell) error {
	if !c.wroteHeader {
		if err := c.w.Write(domain.FieldNames); err != nil {
			return err
		}
		c.wroteHeader = true
	}
	return c.w.Write(Record(s))
}

func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// Record flattens a spell into the canonical column order.
func Record(s domain.Spell) []string {
	materials := ""
	if s.Materials != nil {
		materials = *s.Materials
	}
	return []string{
		s.Name,
		strconv.Itoa(s.Level),
		s.School,
		strconv.FormatBool(s.Cantrip),
		strconv.FormatBool(s.Ritual),
		s.CastingTime,
		s.Range,
		strconv.FormatBool(s.Verbal),
		strconv.FormatBool(s.Material),
		strconv.FormatBool(s.Somatic),
		materials,
		s.Duration,
		strconv.FormatBool(s.Concentration),
		s.Description,
	}
}

// ParseRecord rebuilds a spell from a CSV row in canonical column order.
// Inverse of Record; an empty materials column maps back to nil.
func ParseRecord(row []string) (domain.Spell, error) {
	if len(row) != len(domain.FieldNames) {
		return domain.Spell{}, fmt.Errorf("expected %d fields, got %d", len(domain.FieldNames), len(row))
	}

	level, err := strconv.Atoi(row[1])
	if err != nil {
		return domain.Spell{}, fmt.Errorf("invalid level %q: %w", row[1], err)
	}

	bools := make([]bool, 0, 5)
	for _, i := range []int{3, 4, 7, 8, 9} {
		b, err := strconv.ParseBool(row[i])
		if err != nil {
			return domain.Spell{}, fmt.Errorf("invalid %s %q: %w", domain.FieldNames[i], row[i], err)
		}
		bools = append(bools, b)
	}
	concentration, err := strconv.ParseBool(row[12])
	if err != nil {
		return domain.Spell{}, fmt.Errorf("invalid concentration %q: %w", row[12], err)
	}

	s := domain.Spell{
		Name:          row[0],
		Level:         level,
		School:        row[2],
		Cantrip:       bools[0],
		Ritual:        bools[1],
		CastingTime:   row[5],
		Range:         row[6],
		Verbal:        bools[2],
		Material:      bools[3],
		Somatic:       bools[4],
		Duration:      row[11],
		Concentration: concentration,
		Description:   row[13],
	}
	if row[10] != "" {
		materials := row[10]
		s.Materials = &materials
	}
	return s, nil
}
