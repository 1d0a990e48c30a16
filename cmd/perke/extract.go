package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlirezaTheH/perke/extract"
	"github.com/AlirezaTheH/perke/tagger"
)

var (
	extractModel      string
	extractTop        int
	extractConfigPath string
	extractJSON       bool
	extractNormalize  bool
	extractRedundant  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract keyphrases from a text file",
	Long: `Extract reads English text from a file, or from standard input when
no file is given, and prints the highest scored keyphrases.

Examples:
  perke extract paper.txt
  perke extract --model multipartiterank --top 5 paper.txt
  perke extract --config perke.yaml --json paper.txt
  cat paper.txt | perke extract`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractModel, "model", "m", "topicrank",
		"extraction model (textrank, singlerank, positionrank, topicrank, multipartiterank)")
	extractCmd.Flags().IntVarP(&extractTop, "top", "n", 10,
		"number of keyphrases to return")
	extractCmd.Flags().StringVarP(&extractConfigPath, "config", "c", "",
		"YAML configuration file overriding model defaults")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false,
		"output keyphrases as JSON")
	extractCmd.Flags().BoolVar(&extractNormalize, "normalize", false,
		"divide phrase scores by their word count")
	extractCmd.Flags().BoolVar(&extractRedundant, "keep-redundant", false,
		"keep phrases contained in higher scored ones")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	doc, err := tagger.Tag(string(text))
	if err != nil {
		return err
	}

	phrases, err := extract.Extract(doc, cfg, extractTop)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), phrases)
}

// readInput reads the named file, or standard input when no file (or "-")
// is given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// buildConfig resolves the model's defaults, applies the optional YAML
// configuration file and then the command line flags on top.
func buildConfig() (extract.Config, error) {
	model, err := extract.ParseModel(extractModel)
	if err != nil {
		return extract.Config{}, err
	}

	var cfg extract.Config
	switch model {
	case extract.TextRank:
		cfg = extract.NewTextRank()
	case extract.SingleRank:
		cfg = extract.NewSingleRank()
	case extract.PositionRank:
		cfg = extract.NewPositionRank()
	case extract.TopicRank:
		cfg = extract.NewTopicRank()
	case extract.MultipartiteRank:
		cfg = extract.NewMultipartiteRank()
	}

	if extractConfigPath != "" {
		raw, err := os.ReadFile(extractConfigPath)
		if err != nil {
			return extract.Config{}, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return extract.Config{}, fmt.Errorf("parsing %s: %w", extractConfigPath, err)
		}
		cfg.Model = model
	}

	cfg.NormalizeByLength = cfg.NormalizeByLength || extractNormalize
	cfg.KeepRedundant = cfg.KeepRedundant || extractRedundant
	return cfg, nil
}

func writeOutput(w io.Writer, phrases []extract.Keyphrase) error {
	if extractJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(phrases)
	}
	for _, p := range phrases {
		fmt.Fprintf(w, "%.6f\t%s\n", p.Score, p.Text)
	}
	return nil
}
