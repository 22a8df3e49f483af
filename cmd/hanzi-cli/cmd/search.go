package cmd

import (
	"github.com/spf13/cobra"
)

var hexPrefix bool

var searchCmd = &cobra.Command{
	Use:   "search <component|codepoint|hex-prefix>",
	Short: "Search characters by component",
	Long: `Search for characters containing a component, including the
component itself when it is in the dataset. With --prefix the argument is
taken as a partial hexadecimal codepoint and matching dataset codepoints
are listed instead.

Example:
  hanzi-cli -d IDS-UCS-Basic.txt search 木
  hanzi-cli -d IDS-UCS-Basic.txt search --prefix 68E`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if hexPrefix {
			printRunes(explorer.LookupHexPrefix(args[0]))
			return nil
		}
		result, err := explorer.Search(args[0], charsetFilter())
		if err != nil {
			return err
		}
		printRunes(result)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&hexPrefix, "prefix", false, "treat the argument as a hex codepoint prefix")
	rootCmd.AddCommand(searchCmd)
}
