package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcodamonte/objectmodel/internal/stress"
	"github.com/marcodamonte/objectmodel/smartarray"
)

func newStressCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "stress",
		Short: "Run many concurrent reads and writes against one array",
		Long: `Fill an array, then submit a stream of read and write tasks to a
fixed-size worker pool. Every read checks that it saw the full array.
Ctrl+C stops submitting and drains what is queued.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runStress(ctx, cmd)
		},
	}

	f := c.Flags()
	f.Int("size", 64, "elements in the shared array")
	f.Int("workers", 8, "worker goroutines")
	f.Int("queue", 128, "task queue capacity")
	f.Int("tasks", 10000, "tasks to submit")
	f.Int("write-every", 10, "every Nth task is a write (0 for reads only)")
	f.Duration("shutdown-timeout", 30*time.Second, "how long to wait for queued tasks on shutdown")
	mustBind(a.v, "stress.size", f.Lookup("size"))
	mustBind(a.v, "stress.workers", f.Lookup("workers"))
	mustBind(a.v, "stress.queue", f.Lookup("queue"))
	mustBind(a.v, "stress.tasks", f.Lookup("tasks"))
	mustBind(a.v, "stress.write_every", f.Lookup("write-every"))
	mustBind(a.v, "stress.shutdown_timeout", f.Lookup("shutdown-timeout"))
	return c
}

func (a *app) runStress(ctx context.Context, cmd *cobra.Command) error {
	cfg := a.cfg.Stress

	arr := smartarray.NewSized[int](cfg.Size, "StressData", smartarray.WithLogger(a.log))
	defer arr.Release()
	arr.FillStep(0, 0)

	pool := stress.New(stress.Config{
		Workers:         cfg.Workers,
		QueueSize:       cfg.Queue,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          a.log,
	}, arr)

	for i := 0; i < cfg.Tasks; i++ {
		t := stress.Task{Kind: stress.Read}
		if cfg.WriteEvery > 0 && i%cfg.WriteEvery == 0 {
			t = stress.Task{Kind: stress.Write, Index: i % cfg.Size, Value: i}
		}
		if err := pool.Submit(ctx, t); err != nil {
			a.log.WithError(err).Warn("stopped submitting")
			break
		}
	}

	shutdownErr := pool.Shutdown()
	m := pool.Metrics()
	fmt.Fprintf(cmd.OutOrStdout(), "submitted=%d reads=%d writes=%d failed=%d dropped=%d torn=%d\n",
		m.Submitted, m.Reads, m.Writes, m.Failed, m.Dropped, m.Torn)

	if errors.Is(shutdownErr, stress.ErrShutdownTimeout) {
		return shutdownErr
	}
	if m.Torn > 0 {
		return fmt.Errorf("%d torn reads: %w", m.Torn, stress.ErrTornRead)
	}
	return nil
}
