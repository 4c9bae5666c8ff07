// Package cmd wires the scenarios, the stress pool and the word counter to
// the objectmodel command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/marcodamonte/objectmodel/internal/config"
	"github.com/marcodamonte/objectmodel/internal/logging"
)

// app carries state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *logrus.Logger
}

// NewRootCommand builds the command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "objectmodel",
		Short: "Walk through object lifecycle, copy/move and reader/writer locking",
		Long: `objectmodel runs small scripted scenarios around SmartArray, an owning
array guarded by a reader/writer lock, and prints what happens at each
construction, copy, move and release.

Commands:
  run      Run one or more scenarios (part0..part4, dispatch, words)
  stress   Hammer one array with concurrent readers and writers
  words    Count words in a sentence`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.OutOrStdout())
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./objectmodel.yaml or $HOME/.objectmodel/objectmodel.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.StringP("output", "o", "text", "output format (text, json, yaml)")
	mustBind(a.v, "log.level", pf.Lookup("log-level"))
	mustBind(a.v, "log.format", pf.Lookup("log-format"))
	mustBind(a.v, "output", pf.Lookup("output"))

	root.AddCommand(
		newRunCommand(a),
		newStressCommand(a),
		newWordsCommand(a),
	)
	return root
}

func (a *app) load(out io.Writer) error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log, err := logging.New(out, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// Execute runs the root command against stdout and exits non-zero on error.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func mustBind(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("cmd: bind %s: %v", key, err))
	}
}
