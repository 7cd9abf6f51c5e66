package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/logger"

	"github.com/spf13/cobra"
)

var printTree bool

// guessCmd represents the guess command
var guessCmd = &cobra.Command{
	Use:        "guess <name>...",
	Short:      "guess media properties from a release name",
	Long:       `guess media properties from a release name`,
	Args:       cobra.MinimumNArgs(1),
	ArgAliases: []string{"release names"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		log := logger.Get()
		ctx = logger.WithCtx(ctx, log)

		g := guesser.New()
		for _, name := range args {
			result, tree, err := g.Guess(ctx, name)
			if err != nil {
				log.Fatalw("failed to guess name", "name", name, "error", err)
			}

			b, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				log.Fatalw("failed to render guess", "name", name, "error", err)
			}

			fmt.Println(string(b))
			if printTree {
				fmt.Println(tree.Render())
			}
		}
	},
}

func init() {
	guessCmd.Flags().BoolVar(&printTree, "tree", false, "print the diagnostic match tree")
	rootCmd.AddCommand(guessCmd)
}
