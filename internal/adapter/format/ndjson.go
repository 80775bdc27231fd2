package format

import (
	"encoding/json"
	"io"

	"grimoire/internal/domain"
)

// NDJSONWriter emits one JSON object per line. Field types are native:
// booleans, an unquoted level, and a null materials value when absent.
type NDJSONWriter struct {
	enc *json.Encoder
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

func (n *NDJSONWriter) Write(s domain.Spell) error {
	return n.enc.Encode(s)
}

func (n *NDJSONWriter) Flush() error {
	return nil
}
