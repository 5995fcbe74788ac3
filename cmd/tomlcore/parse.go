package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tomlcore/tomlcore/toml"
)

var jsonPretty bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a TOML file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tbl, diags := toml.ParseWithContext(src)
		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprint(os.Stderr, d.FormatForTerminal())
			}
			return fmt.Errorf("%d error(s) parsing %s", len(diags), args[0])
		}

		var out []byte
		if jsonPretty {
			out, err = toml.ToJSONPretty(tbl, 2)
		} else {
			out, err = toml.ToJSON(tbl)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		color.New(color.FgGreen).Fprintf(os.Stderr, "parsed %s OK\n", args[0])
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&jsonPretty, "pretty", false, "pretty-print the JSON output")
}
