package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	TokenExpiryMargin  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	Ruleset        = "osu"
	APIVersion     = "20240529"
	TopPlaysLimit  = 5
	WSWriteTimeout = 5 * time.Second
	CancelMessage  = "cancel"
	KeepAliveReply = "alive"
)
