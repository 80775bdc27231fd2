package parse

import (
	"errors"
	"strings"

	"grimoire/internal/adapter/scan"
	"grimoire/internal/domain"
)

// ErrNoSpells is returned when the input ends without a single block-start
// marker having been seen. Empty or truncated transcriptions are not a
// supported input shape.
var ErrNoSpells = errors.New("no spell block found in input")

const blockStartPrefix = "Casting Time"

// paragraphMark is the two-character sequence the extraction step leaves
// behind where the source document had a paragraph break.
const paragraphMark = " \t"

// EmitFunc receives each completed spell in input order. A record is handed
// off exactly once and never mutated afterwards.
type EmitFunc func(domain.Spell) error

// Assembler reconstructs spell records from an unlabeled line stream. It
// recognizes block boundaries by looking two lines ahead for the casting
// time header, so it reads through a WindowReader rather than line by line.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Parse consumes windows until the source is exhausted, emitting one record
// per spell block. The record in progress is only finalized when the next
// block boundary (or end of input) proves it is complete.
func (a *Assembler) Parse(win *scan.WindowReader, emit EmitFunc) error {
	var current *domain.Spell
	var body []string

	for {
		w, ok := win.Next()
		if !ok {
			break
		}
		first, middle, last := w[0], w[1], w[2]

		if strings.HasPrefix(last, blockStartPrefix) {
			if current != nil {
				current.Description = joinBody(body)
				if err := emit(*current); err != nil {
					return err
				}
			}
			body = body[:0]
			current = startBlock(first, middle, last)
			// middle and last are header lines already consumed here;
			// resynchronize so the next window starts past them.
			win.Skip(2)
			continue
		}

		switch {
		case current != nil && strings.HasPrefix(first, "Range"):
			current.Range = strings.ToLower(headerValue(first))
		case current != nil && strings.HasPrefix(first, "Duration"):
			parseDuration(current, first)
		case current != nil && strings.HasPrefix(first, "Component"):
			// Singular prefix: the source document misspells
			// "Components" on at least one spell.
			parseComponents(current, first)
		default:
			body = append(body, first)
		}
	}

	if err := win.Err(); err != nil {
		return err
	}
	if current == nil {
		return ErrNoSpells
	}

	// The last one or two input lines were only ever visible as lookahead;
	// they belong to the final spell's body.
	body = append(body, win.Tail()...)
	current.Description = joinBody(body)
	return emit(*current)
}

// startBlock builds a fresh record from the three header lines of a block:
// the title, the level/school summary, and the casting time line.
func startBlock(title, summary, castingLine string) *domain.Spell {
	s := &domain.Spell{
		Name:        title,
		CastingTime: strings.ToLower(headerValue(castingLine)),
	}

	fields := strings.Fields(summary)
	if len(summary) > 0 && summary[0] >= '0' && summary[0] <= '9' {
		s.Level = int(summary[0] - '0')
		if len(fields) > 1 {
			s.School = strings.ToLower(fields[1])
		}
	} else if len(fields) > 0 {
		s.School = strings.ToLower(fields[0])
	}

	lower := strings.ToLower(summary)
	s.Ritual = strings.Contains(lower, "ritual")
	s.Cantrip = strings.Contains(lower, "cantrip")
	return s
}

func parseDuration(s *domain.Spell, line string) {
	value := strings.ToLower(headerValue(line))
	s.Concentration = strings.Contains(value, "concentration")
	s.Duration = strings.ReplaceAll(value, "concentration, ", "")
}

func parseComponents(s *domain.Spell, line string) {
	value := headerValue(line)
	s.Verbal = strings.Contains(value, "V")
	s.Somatic = strings.Contains(value, "S")
	s.Material = strings.Contains(value, "M")

	if open := strings.Index(value, "("); open >= 0 {
		materials := strings.TrimSuffix(value[open+1:], ")")
		s.Materials = &materials
	}
}

// headerValue returns the text after the first ": " separator. A line
// without the separator degrades to the whole line unchanged.
func headerValue(line string) string {
	parts := strings.SplitN(line, ": ", 2)
	return parts[len(parts)-1]
}

// joinBody collapses accumulated body lines into one description string,
// restoring the paragraph breaks the extraction step flattened into
// space+tab sequences.
func joinBody(lines []string) string {
	joined := strings.Join(lines, " ")
	return strings.ReplaceAll(joined, paragraphMark, "\n")
}
