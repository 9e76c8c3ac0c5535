package domain

import "fmt"

type RankStatus int

const (
	StatusGraveyard RankStatus = -2
	StatusWIP       RankStatus = -1
	StatusPending   RankStatus = 0
	StatusRanked    RankStatus = 1
	StatusApproved  RankStatus = 2
	StatusQualified RankStatus = 3
	StatusLoved     RankStatus = 4
)

var statusNames = map[RankStatus]string{
	StatusGraveyard: "graveyard",
	StatusWIP:       "wip",
	StatusPending:   "pending",
	StatusRanked:    "ranked",
	StatusApproved:  "approved",
	StatusQualified: "qualified",
	StatusLoved:     "loved",
}

func (s RankStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RankStatus(%d)", int(s))
}

// HasLeaderboard reports whether the scoring service keeps scores for maps in this status.
func (s RankStatus) HasLeaderboard() bool {
	switch s {
	case StatusRanked, StatusApproved, StatusQualified, StatusLoved:
		return true
	}
	return false
}

func (s RankStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func ParseRankStatus(name string) (RankStatus, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown rank status %q", name)
}
