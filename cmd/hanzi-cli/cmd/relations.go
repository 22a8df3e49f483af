package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sistersCmd = &cobra.Command{
	Use:   "sisters <character|codepoint>",
	Short: "List characters with an identical structure",
	Long: `List every character whose decomposition tree is structurally
identical to one of the queried character's variants.

Example:
  hanzi-cli -d IDS-UCS-Basic.txt sisters 林`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cp, err := resolveArg(args)
		if err != nil {
			return err
		}
		result, err := explorer.SisterCharacters(cp, charsetFilter())
		if err != nil {
			return err
		}
		printRunes(result)
		return nil
	},
}

var derivedCmd = &cobra.Command{
	Use:   "derived <character|codepoint>",
	Short: "List characters built from this one",
	Long: `List every character that contains the queried character as a
component anywhere in its decomposition, at any depth.

Example:
  hanzi-cli -d IDS-UCS-Basic.txt derived 木`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cp, err := resolveArg(args)
		if err != nil {
			return err
		}
		result, err := explorer.DerivedCharacters(cp, charsetFilter())
		if err != nil {
			return err
		}
		printRunes(result)
		return nil
	},
}

func printRunes(runes []rune) {
	if len(runes) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, cp := range runes {
		fmt.Println(charCell(cp))
	}
}

func init() {
	rootCmd.AddCommand(sistersCmd)
	rootCmd.AddCommand(derivedCmd)
}
