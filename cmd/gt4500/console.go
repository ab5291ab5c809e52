package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/gt4500/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the fire-control console on this terminal",
	Args:  cobra.NoArgs,
	RunE:  runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd.Context(), "console")
	if err != nil {
		return err
	}
	defer rt.close()

	opts := []console.Option{console.WithLogger(rt.logger)}
	if rt.journal != nil {
		opts = append(opts, console.WithHistory(rt.journal))
	}
	h := console.NewHandler(rt.newShip(), opts...)
	return h.Run(cmd.Context(), console.NewStreamConn(cmd.InOrStdin(), cmd.OutOrStdout()))
}
