package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/render"
	"github.com/xtding233/hoops-rotation/internal/rotation"
)

// parseNumber reads a 1-based command-line number and returns it 0-based.
func parseNumber(arg, what string, hi int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	if n < 1 || n > hi {
		return 0, fmt.Errorf("%s must be between 1 and %d", what, hi)
	}
	return n - 1, nil
}

// playerSlot maps a row number of the printed table (priority position) to a
// roster slot.
func (a *app) playerSlot(arg string) (int, error) {
	order := a.planner.Snapshot().Order
	if len(order) == 0 {
		return 0, rotation.ErrEmptyRoster
	}
	pos, err := parseNumber(arg, "player", len(order))
	if err != nil {
		return 0, err
	}
	return order[pos], nil
}

func printSnapshot(w io.Writer, snap planner.Snapshot) {
	fmt.Fprint(w, render.Table(snap))
	fmt.Fprint(w, render.Summary(snap))
}

func printOutcome(w io.Writer, out planner.Outcome) {
	printSnapshot(w, out.Snapshot)
	if out.Warning != "" {
		fmt.Fprintf(w, "warning: %s\n", out.Warning)
	}
	if !out.Changed {
		fmt.Fprintln(w, "(no change)")
	}
}

func (a *app) setupCmd() *cobra.Command {
	var curated bool
	cmd := &cobra.Command{
		Use:   "setup [names...]",
		Short: "Start a session with a roster (defaults to the configured roster)",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.settings.Players
			}
			if !cmd.Flags().Changed("curated") {
				curated = a.settings.UseCurated
			}
			out, err := a.planner.Setup(cmd.Context(), names, curated)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&curated, "curated", true, "Use the curated pattern for 6-13 players")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the rotation grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSnapshot(cmd.OutOrStdout(), a.planner.Snapshot())
			return nil
		},
	}
}

func (a *app) moveCmd(use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.planner.Advance(cmd.Context(), delta)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <player>",
		Short: "Mark a player available or unavailable and replan the rest of the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := a.playerSlot(args[0])
			if err != nil {
				return err
			}
			out, err := a.planner.Toggle(cmd.Context(), slot)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) reorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move a player to another priority position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(a.planner.Snapshot().Order)
			from, err := parseNumber(args[0], "from", n)
			if err != nil {
				return err
			}
			to, err := parseNumber(args[1], "to", n)
			if err != nil {
				return err
			}
			out, err := a.planner.Reorder(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <player> <name>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := a.playerSlot(args[0])
			if err != nil {
				return err
			}
			out, err := a.planner.Rename(cmd.Context(), slot, args[1])
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <game> <player> <period> <0|1>",
		Short: "Edit one cell of the grid by hand",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := parseNumber(args[0], "game", rotation.NumGames)
			if err != nil {
				return err
			}
			slot, err := a.playerSlot(args[1])
			if err != nil {
				return err
			}
			period, err := parseNumber(args[2], "period", rotation.NumPeriods)
			if err != nil {
				return err
			}
			var playing bool
			switch args[3] {
			case "0":
			case "1":
				playing = true
			default:
				return fmt.Errorf("value must be 0 or 1, got %q", args[3])
			}
			out, err := a.planner.SetCell(cmd.Context(), game, slot, period, playing)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) regenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: "Replan every period from the cursor on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.planner.Regenerate(cmd.Context())
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-game",
		Short: "Start a fresh session with the same roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.planner.NewGame(cmd.Context())
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete everything stored for the team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.planner.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared team %s\n", a.planner.Team())
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			revs, err := a.planner.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(revs) == 0 {
				fmt.Fprintln(w, "no revisions")
				return nil
			}
			for _, r := range revs {
				fmt.Fprintf(w, "%-36s  %s  %6d bytes\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Size)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum revisions to list (0 for all)")
	return cmd
}

func (a *app) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <revision>",
		Short: "Make a saved revision current again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.planner.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
