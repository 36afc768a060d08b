package main

import (
	"io"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree writing user output to out and errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "combat",
		Short: "D&D combat tools",
		Long: `combat rolls dice formulas, orders initiative and tracks hit points
for a roster that is stored in a single JSON or YAML file.`,
		Version:       "1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringP("roster", "r", "roster.json", "roster definition file")
	pf.String("format", "auto", "roster file format: auto, json or yaml")
	pf.StringVar(&a.configPath, "config", "", "optional YAML configuration file")
	pf.Uint64("seed", 0, "seed for reproducible rolls (0 uses crypto/rand)")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		newRollCmd(a),
		newInitCmd(a),
		newJoinCmd(a),
		newKillCmd(a),
		newDealCmd(a),
		newHealCmd(a),
		newTempCmd(a),
		newWipeCmd(a),
		newListCmd(a),
	)
	return root
}
