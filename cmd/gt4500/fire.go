package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/gt4500/internal/console"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

var (
	fireMode  string
	fireCount int
)

var fireCmd = &cobra.Command{
	Use:   "fire",
	Short: "Fire torpedoes from a freshly loaded ship and print each result",
	Args:  cobra.NoArgs,
	RunE:  runFire,
}

func init() {
	fireCmd.Flags().StringVarP(&fireMode, "mode", "m", "single", "firing mode: single or all")
	fireCmd.Flags().IntVarP(&fireCount, "count", "n", 1, "number of fire requests")
	rootCmd.AddCommand(fireCmd)
}

func runFire(cmd *cobra.Command, _ []string) error {
	mode, err := weapon.ParseFiringMode(fireMode)
	if err != nil {
		return err
	}
	if fireCount < 1 {
		return fmt.Errorf("--count must be >= 1, got %d", fireCount)
	}

	rt, err := setup(cmd.Context(), "fire")
	if err != nil {
		return err
	}
	defer rt.close()

	s := rt.newShip()
	out := cmd.OutOrStdout()
	for i := 0; i < fireCount; i++ {
		fired, err := s.FireTorpedo(cmd.Context(), mode)
		fmt.Fprintf(out, "%3d  %s\n", i+1, console.FormatResult(mode, fired, err))
	}

	st := s.Status()
	fmt.Fprintf(out, "remaining: %s %d/%d, %s %d/%d\n",
		st.Primary.Role, st.Primary.Count, st.Primary.Capacity,
		st.Secondary.Role, st.Secondary.Count, st.Secondary.Capacity,
	)
	return nil
}
