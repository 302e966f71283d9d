package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	jsonLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "scorpion",
	Short: "A scraper for table hockey results on sportscorpion",
	Long: `Harvests tournament, match and player data from the sportscorpion
results site into a local parquet dataset and CSV files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if jsonLogs {
			log.SetFormatter(log.JSONFormatter)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Emit logs as JSON")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
