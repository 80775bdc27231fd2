package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"grimoire/config"
	"grimoire/internal/adapter/store"
	"grimoire/internal/usecase"
)

var (
	lookupName          string
	lookupSchool        string
	lookupLevel         int
	lookupRitual        bool
	lookupConcentration bool
	lookupKeywords      []string
	lookupLimit         int
	lookupJSON          bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Search the spellbook",
	Long: `Search cataloged spells by name, school, level, traits, or
description keywords.

Examples:
  grimoire lookup -n fireball
  grimoire lookup --school evocation --level 3
  grimoire lookup -k fire -k damage --json`,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVarP(&lookupName, "name", "n", "", "name substring")
	lookupCmd.Flags().StringVar(&lookupSchool, "school", "", "magic school")
	lookupCmd.Flags().IntVar(&lookupLevel, "level", -1, "spell level (0-9)")
	lookupCmd.Flags().BoolVar(&lookupRitual, "ritual", false, "only ritual spells")
	lookupCmd.Flags().BoolVar(&lookupConcentration, "concentration", false, "only concentration spells")
	lookupCmd.Flags().StringArrayVarP(&lookupKeywords, "keyword", "k", nil, "description keyword (repeatable)")
	lookupCmd.Flags().IntVar(&lookupLimit, "limit", 0, "max results (default from config)")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	rootDir := GetRootDir()

	dbPath := config.SpellbookPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no spellbook found. Run 'grimoire catalog' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open spellbook: %w", err)
	}
	defer st.Close()

	filter := usecase.LookupFilter{
		Name:     lookupName,
		School:   strings.ToLower(lookupSchool),
		Keywords: lookupKeywords,
		Limit:    cfg.Lookup.Limit,
	}
	if lookupLevel >= 0 {
		level := lookupLevel
		filter.Level = &level
	}
	if cmd.Flags().Changed("ritual") {
		filter.Ritual = &lookupRitual
	}
	if cmd.Flags().Changed("concentration") {
		filter.Concentration = &lookupConcentration
	}
	if lookupLimit > 0 {
		filter.Limit = lookupLimit
	}

	lookupUC := usecase.NewLookupUseCase(st)
	results, err := lookupUC.Lookup(filter)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No spells found.")
		return nil
	}

	fmt.Printf("Found %d spells\n\n", len(results))
	for i, s := range results {
		tier := fmt.Sprintf("level %d", s.Level)
		if s.Cantrip {
			tier = "cantrip"
		}
		fmt.Printf("--- [%d] %s (%s %s) ---\n", i+1, s.Name, tier, s.School)
		fmt.Printf("Casting time: %s | Range: %s | Duration: %s\n", s.CastingTime, s.Range, s.Duration)
		desc := s.Description
		if len(desc) > 300 {
			desc = desc[:300] + "..."
		}
		fmt.Println(desc)
		fmt.Println()
	}

	return nil
}
