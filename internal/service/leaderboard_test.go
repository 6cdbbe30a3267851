package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMurerwa/EBU/internal/model"
)

func TestRankStandingsDenseTies(t *testing.T) {
	// Equal scores keep distinct sequential ranks in input order.
	standings := []*model.Standing{
		{UserID: uuid.New(), Name: "a", Connections: 30},
		{UserID: uuid.New(), Name: "b", Connections: 30},
		{UserID: uuid.New(), Name: "c", Connections: 10},
	}

	entries := rankStandings(standings)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, "c", entries[2].Name)
}

func TestRankStandingsEmpty(t *testing.T) {
	entries := rankStandings(nil)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRankStandingsZones(t *testing.T) {
	standings := []*model.Standing{
		{UserID: uuid.New(), Name: "top", Connections: 25},
		{UserID: uuid.New(), Name: "mid", Connections: 12},
		{UserID: uuid.New(), Name: "low", Connections: 2},
	}

	entries := rankStandings(standings)
	require.Len(t, entries, 3)

	assert.Equal(t, model.ZoneDarkGreen, entries[0].Zone)
	assert.Equal(t, model.ZoneOrange, entries[1].Zone)
	assert.Equal(t, model.ZoneRed, entries[2].Zone)
}
