package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"grimoire/config"
	"grimoire/internal/adapter/analyzer"
	"grimoire/internal/adapter/fs"
	"grimoire/internal/adapter/parse"
	"grimoire/internal/adapter/store"
	"grimoire/internal/usecase"
)

var catalogClear bool

var catalogCmd = &cobra.Command{
	Use:   "catalog [path]",
	Short: "Parse transcriptions into the spellbook database",
	Long: `Parse every transcription file under the given directory and store
the spells in .grimoire/spellbook.db for later lookup.

Examples:
  grimoire catalog .                  # Catalog the current directory
  grimoire catalog ./transcriptions   # Catalog a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogClear, "clear", false, "clear the spellbook before cataloging")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if err := config.EnsureGrimoireDir(path); err != nil {
		return fmt.Errorf("failed to create .grimoire directory: %w", err)
	}

	dbPath := config.SpellbookPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open spellbook: %w", err)
	}
	defer st.Close()

	if catalogClear {
		fmt.Println("Clearing existing spellbook...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear spellbook: %w", err)
		}
	}

	walker := fs.NewWalker(cfg.Catalog.Includes, cfg.Catalog.Excludes)
	catalogUC := usecase.NewCatalogUseCase(st, walker, parse.NewAssembler(), analyzer.NewTokenizer())

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var initialized bool

	progress := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Cataloging[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)
	}

	result, err := catalogUC.Catalog(path, progress)
	if err != nil {
		return fmt.Errorf("cataloging failed: %w", err)
	}

	fmt.Printf("\nCataloging complete:\n")
	fmt.Printf("  Files parsed:  %d\n", result.FilesParsed)
	fmt.Printf("  Spells stored: %d\n", result.SpellsStored)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nSpellbook stored at: %s\n", dbPath)
	return nil
}
