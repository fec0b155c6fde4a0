package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/hoops-rotation/internal/sim"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		p      sim.Params
		goal   string
		trials int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay random absences over many sessions and summarize fairness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("players") && len(a.settings.Players) > 0 {
				p.Players = len(a.settings.Players)
			}
			if !cmd.Flags().Changed("curated") {
				p.UseCurated = a.settings.UseCurated
			}
			var rng sim.RandomSource
			if cmd.Flags().Changed("seed") {
				rng = sim.NewSeededRNG(seed)
			}
			a.logger.Debug("simulating",
				zap.Int("players", p.Players),
				zap.Float64("drop", p.DropProb),
				zap.Float64("return", p.ReturnProb),
				zap.String("goal", goal),
				zap.Int("trials", trials))
			st, err := sim.Run(p, sim.Goal(goal), trials, rng)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s over %d trials: mean %.3f, stddev %.3f, p50 %.1f, p90 %.1f, p99 %.1f\n",
				goal, trials, st.Mean, st.StdDev, st.P50, st.P90, st.P99)
			return nil
		},
	}
	cmd.Flags().IntVar(&p.Players, "players", 10, "Roster size (default from the configured roster)")
	cmd.Flags().BoolVar(&p.UseCurated, "curated", true, "Start from the curated pattern when one exists")
	cmd.Flags().Float64Var(&p.DropProb, "drop", 0.05, "Chance a player drops out at each period boundary")
	cmd.Flags().Float64Var(&p.ReturnProb, "return", 0, "Chance an absent player returns at each period boundary")
	cmd.Flags().StringVar(&goal, "goal", string(sim.GoalSpread), "What to measure: spread, short_periods or toggles")
	cmd.Flags().IntVar(&trials, "trials", 1000, "Number of simulated sessions")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a replicable run")
	return cmd
}
