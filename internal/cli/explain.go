package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ib-77/delegate/pkg/chain"
	"github.com/ib-77/delegate/pkg/chain/loader"
)

type ChainExplanation struct {
	Chain string   `json:"chain"`
	Kinds []string `json:"kinds"`
}

type MethodExplanation struct {
	Name   string             `json:"name"`
	Chains []ChainExplanation `json:"chains"`
}

func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <file>",
		Short: "Print every method's chains in priority order",
		Long: `Print every method's chains in the order they are tried, each with the
kind of its accessors: "call" invokes a method with the call arguments,
"field" reads a stored field.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, args[0], cmd)
		},
	}
}

func runExplain(opts *RootOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts, cmd.ErrOrStderr())
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	definitions, err := loader.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "load failed", err)
	}

	var explanations []MethodExplanation
	for _, definition := range definitions {
		method, err := definition.Define()
		if err != nil {
			return WrapExitError(ExitFailure, "invalid definition", err)
		}
		logger.Debug("method defined", "method", method.Name(), "chains", len(method.Chains()))
		explanation := MethodExplanation{Name: method.Name()}
		for _, spec := range method.Chains() {
			explanation.Chains = append(explanation.Chains, explainChain(spec))
		}
		explanations = append(explanations, explanation)
	}

	if formatter.IsJSON() {
		return formatter.JSON(explanations)
	}
	for _, explanation := range explanations {
		formatter.Text("%s\n", explanation.Name)
		for i, item := range explanation.Chains {
			formatter.Text("  %d. %s  [%s]\n", i+1, item.Chain, strings.Join(item.Kinds, " "))
		}
	}
	return nil
}

func explainChain(spec *chain.Specification) ChainExplanation {
	explanation := ChainExplanation{Chain: spec.String()}
	for _, accessor := range spec.Accessors() {
		explanation.Kinds = append(explanation.Kinds, accessor.Kind().String())
	}
	return explanation
}
