// Command perke extracts keyphrases from text files using graph-based
// ranking models.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "perke",
	Short: "Graph-based keyphrase extraction",
	Long: `Perke extracts keyphrases from English text using unsupervised
graph-based ranking models: textrank, singlerank, positionrank, topicrank
and multipartiterank.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "perke:", err)
		os.Exit(1)
	}
}
