package scenario

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/marcodamonte/objectmodel/smartarray"
)

// part4 starts one writer and several readers on the same array at once.
// Which reader sees the write is up to the scheduler; the lock only
// guarantees that nobody sees half of it.
func part4(env Env) error {
	cfg := env.Config.RW

	shared := smartarray.NewSized[int](cfg.Size, "SharedData", env.opts()...)
	defer shared.Release()
	fmt.Fprintln(env.Out, "Starting reader/writer lock example...")
	shared.FillStep(cfg.Fill, 0)

	var g errgroup.Group
	g.Go(func() error { return writer(env, shared, 100, cfg.WriteIndex, cfg.WriteValue) })
	for i := range cfg.Readers {
		g.Go(func() error { return reader(env, shared, i) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(env.Out, shared)
	fmt.Fprintln(env.Out, "Reader/writer lock example finished.")
	return nil
}

func reader(env Env, a *smartarray.SmartArray[int], id int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Reader %d is reading:", id)
	for v := range a.Values() {
		fmt.Fprintf(&b, " %d", v)
	}
	fmt.Fprintln(env.Out, b.String())
	return nil
}

func writer(env Env, a *smartarray.SmartArray[int], id, index, value int) error {
	fmt.Fprintf(env.Out, "Writer %d is writing %d at %d\n", id, value, index)
	if err := a.Write(index, value); err != nil {
		return fmt.Errorf("writer %d: %w", id, err)
	}
	return nil
}
