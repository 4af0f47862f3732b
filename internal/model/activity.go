package model

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of event recorded against a chemical.
type Action string

const (
	ActionAdded     Action = "added"
	ActionRemoved   Action = "removed"
	ActionUsed      Action = "used"
	ActionRestocked Action = "restocked"

	// ActionUpdated carries the new absolute total in Quantity, not a delta.
	ActionUpdated Action = "updated"

	// ActionReportGenerated is an administrative marker and never changes
	// the chemical's quantity.
	ActionReportGenerated Action = "report_generated"
)

// ValidAction reports whether a is one of the known actions.
func ValidAction(a Action) bool {
	switch a {
	case ActionAdded, ActionRemoved, ActionUsed, ActionRestocked, ActionUpdated, ActionReportGenerated:
		return true
	}
	return false
}

// MutatesQuantity reports whether recording a changes the chemical's on-hand
// quantity.
func (a Action) MutatesQuantity() bool {
	return a != ActionReportGenerated
}

// CountsAsUsage reports whether a contributes to usage aggregation.
func (a Action) CountsAsUsage() bool {
	return a == ActionUsed || a == ActionRemoved
}

var ErrInsufficientQuantity = errors.New("insufficient quantity: activity would drive stock below zero")

// ApplyQuantity computes the chemical quantity after recording an activity.
//
//	added, restocked  -> current + |q|
//	removed, used     -> current - |q|
//	updated           -> q (absolute replacement)
//	report_generated  -> current
//
// Removals that would take the quantity below zero are rejected.
func ApplyQuantity(current float64, action Action, q float64) (float64, error) {
	switch action {
	case ActionAdded, ActionRestocked:
		return current + math.Abs(q), nil
	case ActionRemoved, ActionUsed:
		next := current - math.Abs(q)
		if next < 0 {
			return current, ErrInsufficientQuantity
		}
		return next, nil
	case ActionUpdated:
		if q < 0 {
			return current, ErrInsufficientQuantity
		}
		return q, nil
	case ActionReportGenerated:
		return current, nil
	}
	return current, errors.New("unknown action: " + string(action))
}

// ChemicalActivity is an audit record of a quantity-changing (or
// administrative) event. Timestamp is set when the row is written and is
// never updated afterwards.
type ChemicalActivity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Action    Action    `gorm:"type:varchar(20);not null;index" json:"action" validate:"required"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Timestamp time.Time `gorm:"not null;index:,sort:desc" json:"timestamp"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	ChemicalID uuid.UUID `gorm:"type:uuid;not null;index" json:"chemical_id" validate:"uuid_required"`
	Chemical   *Chemical `gorm:"foreignKey:ChemicalID;constraint:OnDelete:CASCADE" json:"chemical,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ChemicalActivity) TableName() string {
	return "chemical_activities"
}

// TitleAction renders the action for report rows ("used" -> "Used",
// "report_generated" -> "Report_Generated").
func (a *ChemicalActivity) TitleAction() string {
	b := []byte(string(a.Action))
	upper := true
	for i, c := range b {
		if upper && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upper = c == '_' || c == ' '
	}
	return string(b)
}
