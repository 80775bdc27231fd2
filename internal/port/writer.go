package port

import "grimoire/internal/domain"

// RecordWriter consumes completed spells in input order. Write for record N
// is called before record N+1 is parsed, so output order always matches
// input order.
type RecordWriter interface {
	Write(domain.Spell) error
	// Flush forces any buffered output to the underlying stream.
	Flush() error
}
