package domain

import "strings"

type User struct {
	OsuID int64  `json:"osu_id"`
	Name  string `json:"name"`
}

type Mapset struct {
	MapsetID int64
	Title    string
	Artist   string
}

type Map struct {
	MapID    int64
	MapsetID int64
	Status   RankStatus
	Version  string
}

// RatedModCombo is the star rating of one map under one canonical mod combo.
type RatedModCombo struct {
	MapID      int64
	ModCombo   string
	StarRating float64
}

type Score struct {
	ScoreID  int64
	UserID   int64
	MapID    int64
	ModCombo string
	Lazer    bool
	Value    float64
	Accuracy float64
}

// MostPlayed is one entry of a user's most played list.
type MostPlayed struct {
	Mapset Mapset
	Map    Map
}

type Mod struct {
	Acronym     string
	HasSettings bool
}

// PlayedScore is a score as returned by the score source, before normalization.
type PlayedScore struct {
	ScoreID    int64
	Accuracy   float64
	TotalScore float64
	Mods       []Mod
	Lazer      bool
}

func (s PlayedScore) Acronyms() []string {
	acronyms := make([]string, len(s.Mods))
	for i, m := range s.Mods {
		acronyms[i] = m.Acronym
	}
	return acronyms
}

func JoinAcronyms(acronyms []string) string {
	return strings.Join(acronyms, ",")
}
