// Package cli wires nub's command-line surface: flag parsing (cobra),
// format registry construction, and the end-to-end run() pipeline that
// read-input/shape/range/compress/dedup/limit funnel through.
package cli

import (
	"fmt"

	"github.com/hcristescu/nub/internal/buildinfo"
	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/nuberr"
	"github.com/spf13/cobra"
)

var flags options
var noLineNumbers bool

var rootCmd = &cobra.Command{
	Use:   "nub [file]",
	Short: "Smart context compression for AI agents",
	Long: `nub compresses large textual artifacts into a bounded, shape-sized
summary suitable for feeding LLM agents: pipe-friendly, format-aware, and
budget-controlled rather than a blind head/tail truncation.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			flags.File = args[0]
		}
		flags.LineNumbers = !noLineNumbers
		flags.HasTemperature = cmd.Flags().Changed("temperature")
		cfg := config.Clone(config.Get())
		registry := buildRegistry(cfg.Text)
		return run(cmd.OutOrStdout(), flags, cfg, registry)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.Shape, "shape", "s", "120:100", "Output shape as WIDTH:HEIGHT (e.g., 120:100 for 120 chars x 100 lines)")
	f.IntVarP(&flags.Wrap, "wrap", "w", 0, "Wrap long lines at this width, creating fractional line addresses")
	f.StringVarP(&flags.Range, "range", "r", "", "Line range (supports fractional: 1.0:5.50, 100:200, or 42.25:42.75)")
	f.BoolVarP(&noLineNumbers, "no-line-numbers", "N", false, "Suppress the \"N: \" line number prefix (numbers are on by default)")
	f.StringVarP(&flags.Grep, "grep", "g", "", "Regex pattern to boost matching lines")
	f.StringVar(&flags.Separator, "separator", "", "Split content by this separator instead of newlines (e.g., '---')")
	f.StringVar(&flags.SeparatorRegex, "separator-regex", "", "Split content by regex pattern (e.g., '^---$')")
	f.BoolVarP(&flags.Profile, "profile", "p", false, "Profile file: report size, line count, hash, token count, detected format and top-level topology scores")
	f.BoolVarP(&flags.Deduplicate, "deduplicate", "d", false, "Remove repeated 3-word sequences to reduce redundancy")
	f.IntVar(&flags.Limit, "limit", 10000, "Maximum output characters (0 disables the limit)")
	f.StringVar(&flags.FormatType, "type", "", "Force format type (e.g., text, python, json)")

	// Legacy compatibility, hidden from --help per the original CLI.
	f.IntVarP(&flags.Target, "target", "t", 0, "")
	f.Float64Var(&flags.Temperature, "temperature", 0, "")
	_ = f.MarkHidden("target")
	_ = f.MarkHidden("temperature")

	rootCmd.SetVersionTemplate(fmt.Sprintf("nub version %s (%s, %s/%s)\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.OS(), buildinfo.Arch()))
	rootCmd.Version = buildinfo.Version
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return nuberr.ExitCode(err)
	}
	return 0
}

// RootCmd exposes the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
