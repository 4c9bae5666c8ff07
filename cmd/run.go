package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marcodamonte/objectmodel/internal/scenario"
	"github.com/marcodamonte/objectmodel/smartarray"
)

func newRunCommand(a *app) *cobra.Command {
	var names []string
	for _, s := range scenario.All() {
		names = append(names, s.Name)
	}

	c := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios (all of them when none is named)",
		Long: fmt.Sprintf(`Run one or more scenarios in order.

Scenarios: %s

Examples:
  # Copy and move assignment
  objectmodel run part3

  # Reader/writer lock with five readers writing 42 at index 2
  objectmodel run part4 --readers 5 --write-index 2 --write-value 42`, strings.Join(names, ", ")),
		ValidArgs: names,
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker := &smartarray.Tracker{}
			err := scenario.Run(scenario.Env{
				Out:     cmd.OutOrStdout(),
				Log:     a.log,
				Config:  a.cfg,
				Tracker: tracker,
			}, args...)

			st := tracker.Stats()
			a.log.WithFields(logrus.Fields{
				"allocations": st.Allocations,
				"releases":    st.Releases,
				"copies":      st.Copies,
				"moves":       st.Moves,
			}).Debug("storage accounting")
			if err == nil && st.Live() != 0 {
				err = fmt.Errorf("%d storage blocks were never released", st.Live())
			}
			return err
		},
	}

	f := c.Flags()
	f.Int("size", 8, "elements in the shared array (part4)")
	f.Int("fill", 20, "value every element starts with (part4)")
	f.Int("readers", 3, "number of concurrent readers (part4)")
	f.Int("write-index", 0, "index the writer stores into (part4)")
	f.Int("write-value", 7, "value the writer stores (part4)")
	mustBind(a.v, "rw.size", f.Lookup("size"))
	mustBind(a.v, "rw.fill", f.Lookup("fill"))
	mustBind(a.v, "rw.readers", f.Lookup("readers"))
	mustBind(a.v, "rw.write_index", f.Lookup("write-index"))
	mustBind(a.v, "rw.write_value", f.Lookup("write-value"))
	return c
}
