package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/adapter/format"
	"grimoire/internal/adapter/parse"
	"grimoire/internal/port"
	"grimoire/internal/usecase"
)

var (
	convertInput  string
	convertOutput string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a transcription to CSV or line-delimited JSON",
	Long: `Convert a plain-text spell transcription into structured records.

Reads from stdin and writes to stdout unless -i/-o are given.

Examples:
  grimoire convert < spells.txt > spells.csv
  grimoire convert -i spells.txt -o spells.ndjson -f json`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "input file (default stdin)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default stdout)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "output format: csv or json (default from config)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	outFormat := cfg.Convert.Format
	if convertFormat != "" {
		outFormat = convertFormat
	}
	if outFormat != "csv" && outFormat != "json" {
		return fmt.Errorf("unsupported format %q (want csv or json)", outFormat)
	}

	var in io.Reader = os.Stdin
	if convertInput != "" {
		f, err := os.Open(convertInput)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	toFile := convertOutput != ""
	if toFile {
		f, err := os.Create(convertOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	var writer port.RecordWriter
	if outFormat == "json" {
		writer = format.NewNDJSONWriter(out)
	} else {
		writer = format.NewCSVWriter(out)
	}

	convertUC := usecase.NewConvertUseCase(parse.NewAssembler(), writer)
	count, err := convertUC.Convert(in)
	if err != nil {
		return err
	}

	if toFile {
		fmt.Printf("Converted %d spells to %s\n", count, convertOutput)
	}
	return nil
}
