package scenario

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/marcodamonte/objectmodel/wordfreq"
)

// Sentence is the text counted by the words scenario.
const Sentence = "the quick brown fox jumps over the lazy dog the quick fox"

func words(env Env) error {
	entries := wordfreq.Top(wordfreq.Count(wordfreq.Split(Sentence), false), 0)
	return WriteEntries(env.Out, env.Config.Output, entries)
}

// WriteEntries renders entries as text, json or yaml.
func WriteEntries(w io.Writer, format string, entries []wordfreq.Entry) error {
	switch format {
	case "", "text":
		for _, e := range entries {
			fmt.Fprintf(w, "%-8s %d\n", e.Word, e.Count)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
