// Command pwlc compiles one of the built-in example circuits into a
// case table and prints it as JSON, mirroring the root-command +
// subcommand structure of oisee-z80-optimizer/cmd/z80opt/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/msdsl-go/pwlc/internal/demo"
	"github.com/msdsl-go/pwlc/pkg/caseio"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pwlc",
		Short: "Compile a small-signal circuit into a piecewise-linear case table",
	}

	var output string
	compileCmd := &cobra.Command{
		Use:   "compile <circuit>",
		Short: "Compile a built-in example circuit and print its case table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := demo.Build(args[0])
			if err != nil {
				return err
			}

			table, err := built.Circuit.Solve(built.Dt)
			if err != nil {
				return fmt.Errorf("compiling %s: %w", args[0], err)
			}

			data, err := caseio.Marshal(table)
			if err != nil {
				return fmt.Errorf("serializing %s: %w", args[0], err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cases to %s\n", len(table.Cases), output)
			return nil
		},
	}
	compileCmd.Flags().StringVarP(&output, "output", "o", "", "write the case table to a file instead of stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in example circuits",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range demo.Names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(compileCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
