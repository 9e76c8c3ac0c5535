package api

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type MostPlayedItem struct {
	BeatmapID  int64      `json:"beatmap_id"`
	Count      int        `json:"count"`
	Beatmap    Beatmap    `json:"beatmap"`
	Beatmapset Beatmapset `json:"beatmapset"`
}

type Beatmap struct {
	ID           int64   `json:"id"`
	BeatmapsetID int64   `json:"beatmapset_id"`
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	StarRating   float64 `json:"difficulty_rating"`
}

type Beatmapset struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type BeatmapUserScoresResponse struct {
	Scores []Score `json:"scores"`
}

type Score struct {
	ID         int64       `json:"id"`
	Accuracy   float64     `json:"accuracy"`
	TotalScore float64     `json:"total_score"`
	Mods       []Mod       `json:"mods"`
	StartedAt  *string     `json:"started_at"`
	Beatmap    *Beatmap    `json:"beatmap,omitempty"`
	Beatmapset *Beatmapset `json:"beatmapset,omitempty"`
}

// Lazer reports whether the score was set on the lazer client. Stable scores
// have no start time.
func (s Score) Lazer() bool {
	return s.StartedAt != nil
}

type Mod struct {
	Acronym  string         `json:"acronym"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (m Mod) HasSettings() bool {
	return m.Settings != nil
}

type attributesRequest struct {
	Mods    []string `json:"mods"`
	Ruleset string   `json:"ruleset"`
}

// modAttributesRequest sends mods as objects so their settings count toward the rating.
type modAttributesRequest struct {
	Mods    []Mod  `json:"mods"`
	Ruleset string `json:"ruleset"`
}

type AttributesResponse struct {
	Attributes DifficultyAttributes `json:"attributes"`
}

type DifficultyAttributes struct {
	StarRating float64 `json:"star_rating"`
	MaxCombo   int     `json:"max_combo"`
}
