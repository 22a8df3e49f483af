package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yintzuyuan/hanzicomp"
	"github.com/yintzuyuan/hanzicomp/chiseids"
)

var (
	datasetPaths []string
	charset      string
	explorer     *hanzicomp.Explorer
)

var rootCmd = &cobra.Command{
	Use:   "hanzi-cli",
	Short: "Query Han character decompositions and component relations",
	Long: `hanzi-cli loads an IDS character database and answers structural
queries over it: how a character decomposes into components, which
characters share its exact structure (sisters), and which characters
use it as a building block (derived characters).

Characters can be given literally (森) or as codepoints (68EE, U+68EE).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if len(datasetPaths) == 0 {
			return fmt.Errorf("no dataset given, use --dataset")
		}
		readers := make([]io.Reader, 0, len(datasetPaths))
		for _, path := range datasetPaths {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			readers = append(readers, f)
		}
		x, err := hanzicomp.Initialize("chise-ids",
			chiseids.NewReader(io.MultiReader(readers...)))
		if err != nil {
			return err
		}
		explorer = x
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&datasetPaths, "dataset", "d", nil,
		"path(s) to CHISE IDS source files")
	rootCmd.PersistentFlags().StringVarP(&charset, "charset", "c", "",
		"restrict results to these characters (a string of literal characters)")
}

// charsetFilter builds the relation-query filter from the --charset flag.
// An empty flag means no restriction.
func charsetFilter() hanzicomp.Filter {
	if charset == "" {
		return nil
	}
	allowed := make(map[rune]struct{}, len(charset))
	for _, r := range charset {
		allowed[r] = struct{}{}
	}
	return func(cp rune) bool {
		_, ok := allowed[cp]
		return ok
	}
}

// resolveArg turns the single positional argument into a codepoint.
func resolveArg(args []string) (rune, error) {
	return explorer.ResolveToken(args[0])
}
