// Command stresscheck scores messages offline with the same lexicon and
// threshold table the server uses.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/drhelai/helai/internal/lexicon"
	"github.com/drhelai/helai/internal/stress"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// scoreResult is one scored message in --json output.
type scoreResult struct {
	Message        string   `json:"message"`
	Level          int      `json:"stress_level"`
	Label          string   `json:"label"`
	Color          string   `json:"color"`
	Animation      string   `json:"animation"`
	Risk           string   `json:"risk_assessment"`
	IsCrisis       bool     `json:"is_crisis"`
	PrimaryEmotion string   `json:"primary_emotion"`
	Markers        []string `json:"psychological_markers"`
}

func newRootCmd() *cobra.Command {
	var lexiconPath string

	root := &cobra.Command{
		Use:           "stresscheck",
		Short:         "Score chat messages with the HelAI stress lexicon",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&lexiconPath, "lexicon", os.Getenv("LEXICON_PATH"), "YAML lexicon override file")

	root.AddCommand(newScoreCmd(&lexiconPath), newLexiconCmd(&lexiconPath))
	return root
}

func newScoreCmd(lexiconPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score [message...]",
		Short: "Score each argument, or each stdin line when no arguments are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexicon.LoadOrDefault(*lexiconPath)
			if err != nil {
				return err
			}
			analyzer := stress.NewAnalyzer(lex)

			messages := args
			if len(messages) == 0 {
				messages, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for _, msg := range messages {
				res := score(analyzer, msg)
				if asJSON {
					if err := enc.Encode(res); err != nil {
						return fmt.Errorf("encode result: %w", err)
					}
					continue
				}
				fmt.Fprintf(out, "%2d  %-11s %-6s %s\n", res.Level, res.Label, res.Color, res.Message)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per message")
	return cmd
}

func newLexiconCmd(lexiconPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon",
		Short: "Validate and print the effective lexicon as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lex, err := lexicon.LoadOrDefault(*lexiconPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(lex); err != nil {
				return fmt.Errorf("encode lexicon: %w", err)
			}
			return enc.Close()
		},
	}
}

func score(analyzer *stress.Analyzer, message string) scoreResult {
	a := analyzer.Analyze(message)
	m := stress.MeterFor(a.Level)
	return scoreResult{
		Message:        message,
		Level:          a.Level,
		Label:          m.Label,
		Color:          m.Color,
		Animation:      m.Animation,
		Risk:           a.Risk(),
		IsCrisis:       a.IsCrisis(),
		PrimaryEmotion: a.PrimaryEmotion,
		Markers:        a.Markers,
	}
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	return lines, nil
}
