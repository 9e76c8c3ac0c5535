package db

type User struct {
	ID      int64
	OsuID   int64
	OsuName string
}

type Mapset struct {
	ID       int64
	MapsetID int64
	Name     string
	Artist   string
}

type Map struct {
	ID       int64
	MapID    int64
	MapsetID int64
	Status   int64
	Version  string
}

type ModCombo struct {
	MapID      int64
	ModCombo   string
	StarRating float64
}

type Score struct {
	ID       int64
	ScoreID  int64
	UserID   int64
	MapID    int64
	ModCombo string
	Lazer    int64
	Score    float64
	Accuracy float64
}
