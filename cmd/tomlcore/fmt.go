package main

import (
	"fmt"
	"os"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/tomlcore/tomlcore/serialize"
	"github.com/tomlcore/tomlcore/toml"
)

var (
	fmtInPlace bool
	fmtForce   bool
	fmtSort    bool
	fmtIndent  int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reformat a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tbl, diags := toml.ParseWithContext(src)
		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprint(os.Stderr, d.FormatForTerminal())
			}
			return fmt.Errorf("%d error(s) parsing %s", len(diags), path)
		}

		var opts []serialize.Option
		if fmtSort {
			opts = append(opts, serialize.SortKeys())
		}
		if cmd.Flags().Changed("indent") {
			opts = append(opts, serialize.Indent(fmtIndent))
		}
		out, err := toml.Stringify(tbl, opts...)
		if err != nil {
			return err
		}

		if !fmtInPlace {
			fmt.Print(string(out))
			return nil
		}

		if !fmtForce {
			confirmed := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Overwrite %s with the formatted output?", path)}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}
		return os.WriteFile(path, out, 0o644)
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtInPlace, "in-place", "i", false, "write the formatted output back to the file")
	fmtCmd.Flags().BoolVar(&fmtForce, "force", false, "skip the overwrite confirmation prompt")
	fmtCmd.Flags().BoolVarP(&fmtSort, "sort-keys", "s", false, "emit table keys in lexical order")
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 2, "columns per nesting level")
}
