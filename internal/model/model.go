package model

import "time"

type ItemKind string

const (
	ItemKindSegment ItemKind = "segment"
	ItemKindHeader  ItemKind = "header"
)

// Item is one row of a rundown: either a segment or a section header.
// ID is assigned at creation and never changes; every other field is editable.
type Item struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"kind"`

	Name     string `json:"name"`
	Duration int    `json:"duration"` // seconds
	Script   string `json:"script,omitempty"`
	Talent   string `json:"talent,omitempty"`
	Graphics string `json:"graphics,omitempty"`
	Video    string `json:"video,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Color    string `json:"color,omitempty"`

	// Floated rows stay in the running order but are excluded from runtime
	// totals and from playback status progression.
	Floated bool `json:"floated,omitempty"`

	// Custom holds user-defined columns (name -> value).
	Custom map[string]string `json:"custom,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (it Item) IsHeader() bool { return it.Kind == ItemKindHeader }

type RowStatus string

const (
	StatusUpcoming  RowStatus = "upcoming"
	StatusCurrent   RowStatus = "current"
	StatusCompleted RowStatus = "completed"
)
