package dap

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type CLIConfig struct {
	DryRun     bool
	NoColor    bool
	Verbosity  int
	Completion string
}

var cliCfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "dap [patch-file]",
	Short: "Apply search/replace style patches using line-based matching.",
	Long: `Apply patches written in one of several ad-hoc dialects
(SEARCH/REPLACE blocks, arrow blocks, source/dest blocks, DELETE/MOVE
commands, or unified diffs) against files on disk.

Reads the patch from a file argument, piped stdin, or the clipboard.
All edits are validated against the current file contents before
anything is written; a single failing edit aborts the whole batch.

Example: pbpaste | dap --dry-run`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cliCfg.Completion != "" {
			return handleCompletion(cmd)
		}

		SetupLogger(cliCfg.Verbosity)
		if cliCfg.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		cfg := &Config{DryRun: cliCfg.DryRun}
		if len(args) > 0 {
			cfg.PatchFile = args[0]
		}

		app, err := NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		summary, err := app.Execute()
		if err == nil || summary.Total > 0 {
			fmt.Print(FormatSummary(summary))
		}
		return err
	},
}

func handleCompletion(cmd *cobra.Command) error {
	switch cliCfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cliCfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cliCfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().BoolVar(&cliCfg.DryRun, "dry-run", false, "Run every check but skip the final write")
	rootCmd.Flags().BoolVar(&cliCfg.NoColor, "no-color", false, "Disable styled output")
	rootCmd.Flags().CountVarP(&cliCfg.Verbosity, "verbose", "v", "Increase log verbosity")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
