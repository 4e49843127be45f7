package entity

import "time"

type PlayerType string

const (
	PlayerTypeMajor PlayerType = "MAJOR"
	PlayerTypeSmall PlayerType = "SMALL"
)

// Industry mirrors the `industries` table plus its players.
type Industry struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Parameters   IndustryParameters `json:"parameters"`
	MajorPlayers []Player           `json:"majorPlayers"`
	UserID       string             `json:"userId"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type IndustryParameters struct {
	Size      string `json:"size"`
	Geography string `json:"geography"`
}

type Player struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type PlayerType `json:"type"`
}
