package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/sparse-gol/pattern"
)

// NewPatternsCommand lists the built-in patterns
func NewPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List built-in patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range pattern.Names() {
				p, _ := pattern.Builtin(name)
				w, h := p.Size()
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %dx%d, %d cells\n", name, w, h, len(p.Cells))
			}
			return nil
		},
	}
}
