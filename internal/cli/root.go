package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Convert spell transcriptions into structured records",
	Long: `grimoire converts plain-text transcriptions of tabletop spell
descriptions into structured records, and maintains a searchable spellbook.

Example usage:
  grimoire convert -i spells.txt -f csv   # Convert one transcription
  grimoire catalog ./transcriptions       # Build the spellbook database
  grimoire lookup --school evocation      # Search the spellbook`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./grimoire.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
