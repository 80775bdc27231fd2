package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"grimoire/config"
	"grimoire/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show spellbook statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Spellbook: %s\n\n", dbPath)
	fmt.Printf("Total spells: %d\n", stats.TotalSpells)

	if len(stats.ByLevel) > 0 {
		fmt.Println("\nBy level:")
		levels := make([]int, 0, len(stats.ByLevel))
		for level := range stats.ByLevel {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			label := fmt.Sprintf("level %d", level)
			if level == 0 {
				label = "cantrip"
			}
			fmt.Printf("  %-10s %d\n", label, stats.ByLevel[level])
		}
	}

	if len(stats.BySchool) > 0 {
		fmt.Println("\nBy school:")
		schools := make([]string, 0, len(stats.BySchool))
		for school := range stats.BySchool {
			schools = append(schools, school)
		}
		sort.Strings(schools)
		for _, school := range schools {
			fmt.Printf("  %-14s %d\n", school, stats.BySchool[school])
		}
	}

	return nil
}
