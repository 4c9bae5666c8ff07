// Package scenario holds the scripted walkthroughs run by the CLI. Each one
// builds a few arrays, drives them through a lifecycle and prints what it
// observes; arrays are released on the way out like locals leaving scope.
package scenario

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/marcodamonte/objectmodel/internal/config"
	"github.com/marcodamonte/objectmodel/smartarray"
)

// Env is what a scenario runs against.
type Env struct {
	Out     io.Writer
	Log     logrus.FieldLogger
	Config  config.Config
	Tracker *smartarray.Tracker
}

func (e Env) opts() []smartarray.Option {
	return []smartarray.Option{
		smartarray.WithLogger(e.Log),
		smartarray.WithTracker(e.Tracker),
	}
}

// Scenario is one named walkthrough.
type Scenario struct {
	Name  string
	Title string
	Run   func(Env) error
}

var registry = []Scenario{
	{"part0", "Move assignment out of a loop", part0},
	{"part1", "Fill and sort", part1},
	{"part2", "Copy construction", part2},
	{"part3", "Copy and move assignment", part3},
	{"part4", "Reader/writer lock", part4},
	{"dispatch", "Embedding, slicing and interface dispatch", dispatch},
	{"words", "Word frequency", words},
}

// All returns every scenario in run order.
func All() []Scenario {
	out := make([]Scenario, len(registry))
	copy(out, registry)
	return out
}

func Lookup(name string) (Scenario, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// ErrUnknown is returned by Run for a name not in the registry.
type ErrUnknown struct{ Name string }

func (e *ErrUnknown) Error() string { return fmt.Sprintf("unknown scenario %q", e.Name) }

// Run executes the named scenarios in order, or all of them when names is
// empty. It stops at the first failure.
func Run(env Env, names ...string) error {
	list := registry
	if len(names) > 0 {
		list = nil
		for _, n := range names {
			s, ok := Lookup(n)
			if !ok {
				return &ErrUnknown{Name: n}
			}
			list = append(list, s)
		}
	}

	env.Out = &syncWriter{w: env.Out}
	for _, s := range list {
		section(env.Out, s.Title)
		if err := s.Run(env); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n━━━ %s ━━━\n", title)
}

// syncWriter serializes writes from concurrent readers so lines do not
// interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
