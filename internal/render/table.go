// Package render paints a planner snapshot for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/rotation"
)

const (
	playing = "●"
	resting = "·"
	nameCol = 14
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	inactiveStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// Table renders the rotation grid, players in priority order, with the cursor
// column highlighted and per-period headcounts underneath.
func Table(snap planner.Snapshot) string {
	if len(snap.Players) == 0 {
		return dimStyle.Render("no roster yet: run setup") + "\n"
	}
	var b strings.Builder
	cg, cp := snap.Cursor.Game-1, snap.Cursor.Period-1

	// header
	b.WriteString(headerStyle.Render(pad("#", 3) + pad("Player", nameCol)))
	for g := 0; g < rotation.NumGames; g++ {
		b.WriteString("| " + headerStyle.Render(fmt.Sprintf("G%d", g+1)) + " ")
		for t := 0; t < rotation.NumPeriods; t++ {
			b.WriteString(cell(fmt.Sprint(t+1), g == cg && t == cp))
		}
	}
	b.WriteString("| " + headerStyle.Render("Tot") + "\n")

	for rank, slot := range snap.Order {
		pv := snap.Players[slot]
		name := pad(truncate(pv.Name, nameCol-1), nameCol)
		if !pv.Active {
			name = inactiveStyle.Render(name)
		}
		b.WriteString(pad(fmt.Sprint(rank+1), 3) + name)
		for g := 0; g < rotation.NumGames; g++ {
			b.WriteString("|    ")
			for t := 0; t < rotation.NumPeriods; t++ {
				mark := resting
				if slot < len(snap.Games[g]) && snap.Games[g][slot][t] == 1 {
					mark = playing
				}
				b.WriteString(cell(mark, g == cg && t == cp))
			}
		}
		b.WriteString(fmt.Sprintf("| %3d\n", pv.Total))
	}

	// footer: headcount per period, flagged when it misses the target
	b.WriteString(pad("", 3) + pad("on court", nameCol))
	for g := 0; g < rotation.NumGames; g++ {
		b.WriteString("|    ")
		for t := 0; t < rotation.NumPeriods; t++ {
			c := snap.PeriodCounts[g][t]
			s := fmt.Sprint(c)
			if c != rotation.OnCourt {
				s = warnStyle.Render(s)
			}
			b.WriteString(cell(s, g == cg && t == cp))
		}
	}
	b.WriteString("|\n")
	return b.String()
}

// Summary renders the cursor line, the substitutions entering the cursor
// period and the fairness figures.
func Summary(snap planner.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %d, period %d", snap.Cursor.Game, snap.Cursor.Period)
	if snap.UseCurated {
		b.WriteString(dimStyle.Render(" (curated pattern)"))
	}
	b.WriteString("\n")
	if len(snap.Players) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "In:  %s\n", names(snap, snap.Substitution.In))
	fmt.Fprintf(&b, "Out: %s\n", names(snap, snap.Substitution.Out))
	f := snap.Fairness
	fmt.Fprintf(&b, "Playing time: min %d, max %d, mean %.2f, stddev %.2f\n", f.Min, f.Max, f.Mean, f.StdDev)
	return b.String()
}

func names(snap planner.Snapshot, slots []int) string {
	if len(slots) == 0 {
		return "-"
	}
	out := make([]string, len(slots))
	for i, slot := range slots {
		out[i] = snap.Players[slot].Name
	}
	return strings.Join(out, ", ")
}

func cell(s string, current bool) string {
	s = pad(s, 2)
	if current {
		return cursorStyle.Render(s)
	}
	return s
}

// pad right-pads to width printable cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
