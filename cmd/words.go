package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcodamonte/objectmodel/internal/scenario"
	"github.com/marcodamonte/objectmodel/wordfreq"
)

func newWordsCommand(a *app) *cobra.Command {
	var (
		fold bool
		top  int
	)

	c := &cobra.Command{
		Use:   "words [sentence...]",
		Short: "Count how often each word occurs",
		Long: `Split the arguments (or a built-in sentence) on whitespace and print
each word with its count, most frequent first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := scenario.Sentence
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}
			counts := wordfreq.Count(wordfreq.Split(text), fold)
			return scenario.WriteEntries(cmd.OutOrStdout(), a.cfg.Output, wordfreq.Top(counts, top))
		},
	}

	c.Flags().BoolVar(&fold, "fold", false, "count words case-insensitively")
	c.Flags().IntVarP(&top, "top", "n", 0, "only print the N most frequent words")
	return c
}
