package usecase

import (
	"fmt"
	"io"

	"grimoire/internal/adapter/parse"
	"grimoire/internal/adapter/scan"
	"grimoire/internal/domain"
	"grimoire/internal/port"
)

// ConvertUseCase streams spells from a transcription to a record writer.
type ConvertUseCase struct {
	assembler *parse.Assembler
	writer    port.RecordWriter
}

func NewConvertUseCase(assembler *parse.Assembler, writer port.RecordWriter) *ConvertUseCase {
	return &ConvertUseCase{
		assembler: assembler,
		writer:    writer,
	}
}

// Convert parses the input stream end to end. Each record is written before
// the next one is parsed, so a failure leaves already-written records on
// the output stream. Returns the number of spells emitted.
func (u *ConvertUseCase) Convert(r io.Reader) (int, error) {
	win := scan.NewWindowReader(r)

	count := 0
	err := u.assembler.Parse(win, func(s domain.Spell) error {
		count++
		return u.writer.Write(s)
	})
	if err != nil {
		return count, fmt.Errorf("parse failed: %w", err)
	}

	if err := u.writer.Flush(); err != nil {
		return count, fmt.Errorf("flush failed: %w", err)
	}
	return count, nil
}
