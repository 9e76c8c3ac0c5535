package db

import (
	"context"
)

const insertUser = `-- name: InsertUser :exec
INSERT OR IGNORE INTO users (osu_id, osu_name)
VALUES (?, ?)
`

type InsertUserParams struct {
	OsuID   int64
	OsuName string
}

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) error {
	_, err := q.db.ExecContext(ctx, insertUser, arg.OsuID, arg.OsuName)
	return err
}

const getUserByOsuID = `-- name: GetUserByOsuID :one
SELECT id, osu_id, osu_name FROM users
WHERE osu_id = ?
`

func (q *Queries) GetUserByOsuID(ctx context.Context, osuID int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByOsuID, osuID)
	var i User
	err := row.Scan(&i.ID, &i.OsuID, &i.OsuName)
	return i, err
}

const insertMapset = `-- name: InsertMapset :exec
INSERT OR IGNORE INTO mapsets (mapset_id, name, artist)
VALUES (?, ?, ?)
`

type InsertMapsetParams struct {
	MapsetID int64
	Name     string
	Artist   string
}

func (q *Queries) InsertMapset(ctx context.Context, arg InsertMapsetParams) error {
	_, err := q.db.ExecContext(ctx, insertMapset, arg.MapsetID, arg.Name, arg.Artist)
	return err
}

const getMapset = `-- name: GetMapset :one
SELECT id, mapset_id, name, artist FROM mapsets
WHERE mapset_id = ?
`

func (q *Queries) GetMapset(ctx context.Context, mapsetID int64) (Mapset, error) {
	row := q.db.QueryRowContext(ctx, getMapset, mapsetID)
	var i Mapset
	err := row.Scan(&i.ID, &i.MapsetID, &i.Name, &i.Artist)
	return i, err
}

const insertMap = `-- name: InsertMap :exec
INSERT OR IGNORE INTO maps (map_id, mapset_id, version, status)
VALUES (?, ?, ?, ?)
`

type InsertMapParams struct {
	MapID    int64
	MapsetID int64
	Version  string
	Status   int64
}

func (q *Queries) InsertMap(ctx context.Context, arg InsertMapParams) error {
	_, err := q.db.ExecContext(ctx, insertMap, arg.MapID, arg.MapsetID, arg.Version, arg.Status)
	return err
}

const getMap = `-- name: GetMap :one
SELECT id, map_id, mapset_id, status, version FROM maps
WHERE map_id = ?
`

func (q *Queries) GetMap(ctx context.Context, mapID int64) (Map, error) {
	row := q.db.QueryRowContext(ctx, getMap, mapID)
	var i Map
	err := row.Scan(&i.ID, &i.MapID, &i.MapsetID, &i.Status, &i.Version)
	return i, err
}

const listMaps = `-- name: ListMaps :many
SELECT id, map_id, mapset_id, status, version FROM maps
ORDER BY id
`

func (q *Queries) ListMaps(ctx context.Context) ([]Map, error) {
	rows, err := q.db.QueryContext(ctx, listMaps)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Map
	for rows.Next() {
		var i Map
		if err := rows.Scan(&i.ID, &i.MapID, &i.MapsetID, &i.Status, &i.Version); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertModCombo = `-- name: InsertModCombo :exec
INSERT OR IGNORE INTO mod_combos (map_id, mod_combo, star_rating)
VALUES (?, ?, ?)
`

type InsertModComboParams struct {
	MapID      int64
	ModCombo   string
	StarRating float64
}

func (q *Queries) InsertModCombo(ctx context.Context, arg InsertModComboParams) error {
	_, err := q.db.ExecContext(ctx, insertModCombo, arg.MapID, arg.ModCombo, arg.StarRating)
	return err
}

const upsertModCombo = `-- name: UpsertModCombo :exec
INSERT INTO mod_combos (map_id, mod_combo, star_rating)
VALUES (?, ?, ?)
ON CONFLICT (map_id, mod_combo) DO UPDATE SET star_rating = excluded.star_rating
`

type UpsertModComboParams struct {
	MapID      int64
	ModCombo   string
	StarRating float64
}

func (q *Queries) UpsertModCombo(ctx context.Context, arg UpsertModComboParams) error {
	_, err := q.db.ExecContext(ctx, upsertModCombo, arg.MapID, arg.ModCombo, arg.StarRating)
	return err
}

const getModCombosForMap = `-- name: GetModCombosForMap :many
SELECT map_id, mod_combo, star_rating FROM mod_combos
WHERE map_id = ?
ORDER BY mod_combo
`

func (q *Queries) GetModCombosForMap(ctx context.Context, mapID int64) ([]ModCombo, error) {
	rows, err := q.db.QueryContext(ctx, getModCombosForMap, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ModCombo
	for rows.Next() {
		var i ModCombo
		if err := rows.Scan(&i.MapID, &i.ModCombo, &i.StarRating); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertScore = `-- name: InsertScore :exec
INSERT OR IGNORE INTO scores (score_id, user_id, map_id, mod_combo, lazer, score, accuracy)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertScoreParams struct {
	ScoreID  int64
	UserID   int64
	MapID    int64
	ModCombo string
	Lazer    int64
	Score    float64
	Accuracy float64
}

func (q *Queries) InsertScore(ctx context.Context, arg InsertScoreParams) error {
	_, err := q.db.ExecContext(ctx, insertScore,
		arg.ScoreID,
		arg.UserID,
		arg.MapID,
		arg.ModCombo,
		arg.Lazer,
		arg.Score,
		arg.Accuracy,
	)
	return err
}

const getScore = `-- name: GetScore :one
SELECT id, score_id, user_id, map_id, mod_combo, lazer, score, accuracy FROM scores
WHERE score_id = ?
`

func (q *Queries) GetScore(ctx context.Context, scoreID int64) (Score, error) {
	row := q.db.QueryRowContext(ctx, getScore, scoreID)
	var i Score
	err := row.Scan(
		&i.ID,
		&i.ScoreID,
		&i.UserID,
		&i.MapID,
		&i.ModCombo,
		&i.Lazer,
		&i.Score,
		&i.Accuracy,
	)
	return i, err
}

const countScoresByUser = `-- name: CountScoresByUser :one
SELECT COUNT(*) FROM scores
WHERE user_id = ?
`

func (q *Queries) CountScoresByUser(ctx context.Context, userID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countScoresByUser, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
