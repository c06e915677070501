package main

import (
	"testing"
	"time"

	"github.com/annel0/park-engine/internal/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	assert.Nil(t, parseStringList(""))
	assert.Equal(t, []string{"ElementInserted", "MapResized"}, parseStringList(" ElementInserted, ,MapResized "))
}

func TestParseSinceTime(t *testing.T) {
	from := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	got, err := parseSinceTime("30m", from)
	require.NoError(t, err)
	assert.Equal(t, from.Add(-30*time.Minute), got)

	got, err = parseSinceTime("2024-04-30T08:00:00Z", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 30, 8, 0, 0, 0, time.UTC), got)

	got, err = parseSinceTime("", from)
	require.NoError(t, err)
	assert.Equal(t, from, got)

	_, err = parseSinceTime("yesterday", from)
	assert.Error(t, err)
}

func TestFormatEvent(t *testing.T) {
	ev, err := eventbus.NewEnvelope("map:park", "ElementInserted", map[string]any{
		"x": 3, "y": 4, "index": 1, "element": "path",
	})
	require.NoError(t, err)
	out := formatEvent(ev)
	assert.Contains(t, out, "map:park [ElementInserted]")
	assert.Contains(t, out, "Tile: (3,4) Index: 1 Element: path")

	ev, err = eventbus.NewEnvelope("map:park", "MapResized", map[string]any{"x": 80, "y": 64})
	require.NoError(t, err)
	assert.Contains(t, formatEvent(ev), "Size: 80x64")
}
