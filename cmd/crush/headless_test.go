package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard)

func TestReportTutorialBoard(t *testing.T) {
	rules, err := newRules("tutorial", 0, 1, quiet)
	require.NoError(t, err)

	var out bytes.Buffer
	moves := report(&out, rules)

	assert.Equal(t, 6, moves)
	assert.Contains(t, out.String(), "Board 4x4:")
	assert.Contains(t, out.String(), "  r r g r\n")
	assert.Contains(t, out.String(), "Crush groups: 0")
	assert.Contains(t, out.String(), "(0,2) right    crushes 3")
	assert.Contains(t, out.String(), "Hint: ")
}

func TestReportListsExistingGroups(t *testing.T) {
	rules, err := newRules("cascade", 0, 1, quiet)
	require.NoError(t, err)

	var out bytes.Buffer
	report(&out, rules)
	assert.Contains(t, out.String(), "Crush groups: 1")
	assert.Contains(t, out.String(), "red x5")
}

func TestReportDeadBoard(t *testing.T) {
	rules, err := newRules("deadlock", 0, 1, quiet)
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Zero(t, report(&out, rules))
	assert.Contains(t, out.String(), "the board is dead")
}

func TestNewRulesRandomBoard(t *testing.T) {
	rules, err := newRules("", 50, 7, quiet)
	require.NoError(t, err)
	assert.Equal(t, 20, rules.Grid().Size(), "size is clamped")
	assert.Empty(t, rules.FindCrushGroups())
	assert.Zero(t, rules.Grid().EmptyCount())
}

func TestNewRulesUnknownBoard(t *testing.T) {
	_, err := newRules("nope", 0, 1, quiet)
	assert.Error(t, err)
}

func TestAutoplay(t *testing.T) {
	rules, err := newRules("tutorial", 0, 3, quiet)
	require.NoError(t, err)

	var out bytes.Buffer
	res := autoplay(&out, rules, 1, true)

	assert.Equal(t, 1, res.Moves)
	assert.GreaterOrEqual(t, res.Score, 3)
	assert.Contains(t, out.String(), "Start:")
	assert.Contains(t, out.String(), "Move 1: ")
	assert.Empty(t, rules.FindCrushGroups(), "board settles after every move")
}

func TestAutoplayStopsWhenStuck(t *testing.T) {
	rules, err := newRules("deadlock", 0, 1, quiet)
	require.NoError(t, err)

	var out bytes.Buffer
	res := autoplay(&out, rules, 5, false)

	assert.Zero(t, res.Moves)
	assert.True(t, res.Stuck)
	assert.Contains(t, out.String(), "No legal moves left.")
	assert.NotContains(t, out.String(), "Start:")
}
