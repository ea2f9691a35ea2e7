package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-crush/internal/core"
	"github.com/vovakirdan/tui-crush/internal/games/crush/boards"
	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
)

// newRules builds an engine for a headless command. A non-empty ref loads
// that board without resolving it; otherwise a random stable board is dealt.
func newRules(ref string, size int, seed int64, l *log.Logger) (*core.Rules, error) {
	var board *boards.Board
	if ref != "" {
		b, err := boards.Resolve(ref)
		if err != nil {
			return nil, err
		}
		board = &b
		size = b.Size
	}

	size = platformcore.Clamp(size, boards.MinSize, boards.MaxSize)
	grid := core.NewGrid(size, core.WithLogger(l))
	rules := core.NewRules(grid, rand.New(rand.NewSource(seed)))

	if board == nil {
		rules.NewGame()
		return rules, nil
	}
	if err := rules.NewGameFrom(board.Rows); err != nil {
		return nil, fmt.Errorf("board %s: %w", board.ID, err)
	}
	return rules, nil
}

// describeMove formats a move by position rather than token identity.
func describeMove(m core.Move) string {
	pos, ok := m.Token.Location()
	if !ok {
		return m.String()
	}
	return fmt.Sprintf("%s %s", pos, m.Direction)
}

// writeBoard prints the board indented under a heading.
func writeBoard(w io.Writer, heading string, g *core.Grid) {
	fmt.Fprintln(w, heading)
	for _, line := range strings.Split(strings.TrimRight(g.String(), "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// report prints the board, its crush groups, every legal move and a hint.
// Returns the number of legal moves.
func report(w io.Writer, rules *core.Rules) int {
	grid := rules.Grid()
	writeBoard(w, fmt.Sprintf("Board %dx%d:", grid.Size(), grid.Size()), grid)

	groups := rules.FindCrushGroups()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Crush groups: %d\n", len(groups))
	for i, g := range groups {
		positions := make([]string, 0, len(g))
		for _, t := range g {
			pos, _ := t.Location()
			positions = append(positions, pos.String())
		}
		fmt.Fprintf(w, "  %d. %s x%d %s\n", i+1, g[0].Color(), len(g), strings.Join(positions, " "))
	}

	moves := rules.LegalMoves()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Legal moves: %d\n", len(moves))
	for _, m := range moves {
		fmt.Fprintf(w, "  %-14s crushes %d\n", describeMove(m.Move), m.Crushed)
	}

	fmt.Fprintln(w)
	if hint, ok := rules.RandomLegalMove(); ok {
		fmt.Fprintf(w, "Hint: %s\n", describeMove(hint))
	} else {
		fmt.Fprintln(w, "Hint: none, the board is dead")
	}
	return len(moves)
}

// autoplayResult summarizes a headless run.
type autoplayResult struct {
	Moves int
	Score int
	Stuck bool // Ran out of legal moves before the move budget
}

// autoplay makes up to n random legal moves, settling after each one.
// With verbose set it prints the board after every move.
func autoplay(w io.Writer, rules *core.Rules, n int, verbose bool) autoplayResult {
	grid := rules.Grid()
	var res autoplayResult

	// Fixed boards may open with runs
	rules.Settle()

	if verbose {
		writeBoard(w, "Start:", grid)
	}

	for res.Moves < n {
		m, ok := rules.AutoMove()
		if !ok {
			res.Stuck = true
			break
		}
		res.Moves++
		desc := describeMove(m)
		before := grid.Score()
		rounds := rules.Settle()

		if verbose {
			fmt.Fprintln(w)
			writeBoard(w, fmt.Sprintf("Move %d: %s  +%d (%d rounds)", res.Moves, desc, grid.Score()-before, rounds), grid)
		}
	}

	res.Score = grid.Score()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Moves: %d  Score: %d\n", res.Moves, res.Score)
	if res.Stuck {
		fmt.Fprintln(w, "No legal moves left.")
	}
	return res
}
