package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-77/delegate/pkg/chain/loader"
)

// ValidationReport is the validate command's result.
type ValidationReport struct {
	Valid   bool     `json:"valid"`
	Methods int      `json:"methods"`
	Errors  []string `json:"errors,omitempty"`
}

func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate delegated method definitions",
		Long: `Validate every method of a definitions file.

Each chain must have exactly one key per level and end in an accessor name.
All problems are reported, not just the first one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts, cmd.ErrOrStderr())
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	definitions, err := loader.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "load failed", err)
	}
	logger.Debug("definitions loaded", "file", path, "methods", len(definitions))

	table, problems := loader.Check(definitions)
	report := ValidationReport{Valid: len(problems) == 0, Methods: len(table.Names())}
	for _, problem := range problems {
		logger.Debug("invalid definition", "error", problem)
		report.Errors = append(report.Errors, problem.Error())
	}

	if formatter.IsJSON() {
		if err := formatter.JSON(report); err != nil {
			return err
		}
	} else if report.Valid {
		formatter.Text("ok: %d method(s)\n", report.Methods)
	} else {
		for _, message := range report.Errors {
			formatter.Text("error: %s\n", message)
		}
	}

	if !report.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid definition(s)", len(problems)))
	}
	return nil
}
