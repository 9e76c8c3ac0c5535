package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankStatusHasLeaderboard(t *testing.T) {
	eligible := []RankStatus{StatusRanked, StatusApproved, StatusQualified, StatusLoved}
	for _, s := range eligible {
		assert.True(t, s.HasLeaderboard(), s.String())
	}

	ineligible := []RankStatus{StatusGraveyard, StatusWIP, StatusPending}
	for _, s := range ineligible {
		assert.False(t, s.HasLeaderboard(), s.String())
	}
}

func TestParseRankStatus(t *testing.T) {
	s, err := ParseRankStatus("loved")
	require.NoError(t, err)
	assert.Equal(t, StatusLoved, s)

	s, err = ParseRankStatus("graveyard")
	require.NoError(t, err)
	assert.Equal(t, RankStatus(-2), s)

	_, err = ParseRankStatus("nope")
	assert.Error(t, err)
	assert.False(t, RankStatus(9).Valid())
	assert.Equal(t, "RankStatus(9)", RankStatus(9).String())
}

func TestJoinAcronyms(t *testing.T) {
	s := PlayedScore{Mods: []Mod{{Acronym: "HD"}, {Acronym: "DT"}}}
	assert.Equal(t, "HD,DT", JoinAcronyms(s.Acronyms()))
	assert.Equal(t, "", JoinAcronyms(PlayedScore{}.Acronyms()))
}
