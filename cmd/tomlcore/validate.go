package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tomlcore/tomlcore/toml"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a TOML file and report every diagnostic found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, diags := toml.ParseWithContext(src)
		if len(diags) == 0 {
			color.New(color.FgGreen).Printf("%s is valid TOML\n", args[0])
			return nil
		}
		for _, d := range diags {
			fmt.Fprint(os.Stderr, d.FormatForTerminal())
		}
		return fmt.Errorf("%d error(s) in %s", len(diags), args[0])
	},
}
