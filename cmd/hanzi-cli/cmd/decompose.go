package cmd

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yintzuyuan/hanzicomp"
)

var (
	maxDepth    int
	allVariants bool
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose <character|codepoint>",
	Short: "Show the component tree of a character",
	Long: `Show how a character decomposes into components, recursively
expanding components that have decompositions of their own.

Example:
  hanzi-cli -d IDS-UCS-Basic.txt decompose 森
  hanzi-cli -d IDS-UCS-Basic.txt decompose U+68EE --all`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cp, err := resolveArg(args)
		if err != nil {
			return err
		}
		entry, err := explorer.Lookup(cp)
		if err != nil {
			return err
		}
		fmt.Println(charCell(entry.Codepoint))
		if len(entry.Variants) == 0 {
			fmt.Println("(atomic)")
			return nil
		}
		variants := entry.Variants
		if !allVariants {
			variants = variants[:1]
		}
		for i, v := range variants {
			if i > 0 {
				fmt.Println("or")
			}
			printNode(v.Root, "", "", maxDepth, map[rune]bool{entry.Codepoint: true})
		}
		return nil
	},
}

// printNode renders one tree node with box-drawing prefixes, descending into
// the dataset entries of leaf components until depth is exhausted.
func printNode(node *hanzicomp.ComponentNode, prefix, childPrefix string, depth int, visited map[rune]bool) {
	if node.IsLeaf() {
		fmt.Printf("%s%s\n", prefix, charCell(node.Leaf))
		if depth <= 0 || visited[node.Leaf] {
			return
		}
		visited[node.Leaf] = true
		if variants, err := explorer.Decompose(node.Leaf); err == nil && len(variants) > 0 {
			printNode(variants[0].Root, childPrefix, childPrefix, depth-1, visited)
		}
		return
	}
	fmt.Printf("%s%s\n", prefix, string(rune(node.Op)))
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		branch, cont := "├─ ", "│  "
		if last {
			branch, cont = "└─ ", "   "
		}
		printNode(child, childPrefix+branch, childPrefix+cont, depth, visited)
	}
}

// charCell formats a character with its codepoint, padded so codepoint
// columns line up despite double-width CJK glyphs.
func charCell(cp rune) string {
	return fmt.Sprintf("%s U+%04X", runewidth.FillRight(string(cp), 2), cp)
}

func init() {
	decomposeCmd.Flags().IntVar(&maxDepth, "depth", 10, "maximum expansion depth")
	decomposeCmd.Flags().BoolVar(&allVariants, "all", false, "show all decomposition variants")
	rootCmd.AddCommand(decomposeCmd)
}
