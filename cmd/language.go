package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kasuboski/guessr/pkg/language"
	"github.com/kasuboski/guessr/pkg/logger"

	"github.com/spf13/cobra"
)

var searchText string

// languageCmd represents the language command
var languageCmd = &cobra.Command{
	Use:   "language [identifier]",
	Short: "resolve a language identifier or search text for one",
	Long: `resolve a language identifier (alpha2, alpha3 or name) to its
canonical views, or search arbitrary text for a language marker with --search`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		if searchText != "" {
			match, err := language.Search(searchText)
			if err != nil {
				log.Fatalw("failed to search text", "error", err)
			}
			if match == nil {
				fmt.Println("no language found")
				return
			}

			fmt.Printf("%s [%d:%d] (%.2f)\n", match.Language, match.Start, match.End, match.Confidence)
			return
		}

		if len(args) == 0 {
			log.Fatal("an identifier or --search is required")
		}

		lang, err := language.Parse(args[0])
		if err != nil {
			log.Fatalw("failed to parse identifier", "identifier", args[0], "error", err)
		}

		views := map[string]string{
			"alpha3":     lang.Alpha3(),
			"alpha3term": lang.Alpha3Term(),
			"alpha2":     lang.Alpha2(),
			"english":    lang.EnglishName(),
			"french":     lang.FrenchName(),
		}
		if country := lang.Country(); country != nil {
			views["country"] = country.Alpha2()
		}

		b, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			log.Fatalw("failed to render language", "error", err)
		}

		fmt.Println(string(b))
	},
}

func init() {
	languageCmd.Flags().StringVar(&searchText, "search", "", "search text for a language marker")
	rootCmd.AddCommand(languageCmd)
}
