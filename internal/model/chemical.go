package model

import (
	"time"

	"github.com/google/uuid"
)

type ReactivityGroup string

const (
	ReactivityAlkali         ReactivityGroup = "Alkali"
	ReactivityAlkalineEarth  ReactivityGroup = "Alkaline Earth"
	ReactivityTransitionMeta ReactivityGroup = "Transition Metal"
	ReactivityLanthanide     ReactivityGroup = "Lanthanide"
	ReactivityActinide       ReactivityGroup = "Actinide"
	ReactivityMetal          ReactivityGroup = "Metal"
	ReactivityNonmetal       ReactivityGroup = "Nonmetal"
	ReactivityHalogen        ReactivityGroup = "Halogen"
	ReactivityNobleGas       ReactivityGroup = "Noble Gas"
	ReactivityOther          ReactivityGroup = "Other"
)

type ChemicalType string

const (
	TypeOrganic   ChemicalType = "Organic"
	TypeInorganic ChemicalType = "Inorganic"
	TypeBoth      ChemicalType = "Both"
)

type ChemicalState string

const (
	StateSolid  ChemicalState = "Solid"
	StateLiquid ChemicalState = "Liquid"
	StateGas    ChemicalState = "Gas"
	StatePlasma ChemicalState = "Plasma"
	StateOther  ChemicalState = "Other"
)

// ValidReactivityGroup reports whether g is one of the known groups.
func ValidReactivityGroup(g ReactivityGroup) bool {
	switch g {
	case ReactivityAlkali, ReactivityAlkalineEarth, ReactivityTransitionMeta,
		ReactivityLanthanide, ReactivityActinide, ReactivityMetal,
		ReactivityNonmetal, ReactivityHalogen, ReactivityNobleGas, ReactivityOther:
		return true
	}
	return false
}

// ValidChemicalType reports whether t is one of the known types.
func ValidChemicalType(t ChemicalType) bool {
	return t == TypeOrganic || t == TypeInorganic || t == TypeBoth
}

// ValidChemicalState reports whether s is one of the known states.
func ValidChemicalState(s ChemicalState) bool {
	switch s {
	case StateSolid, StateLiquid, StateGas, StatePlasma, StateOther:
		return true
	}
	return false
}

// UnitSuffix returns the display unit for a quantity: liters for liquids,
// grams for everything else.
func (s ChemicalState) UnitSuffix() string {
	if s == StateLiquid {
		return "L"
	}
	return "g"
}

// Chemical is an inventory item. Quantity is in grams or liters depending on
// ChemicalState (see UnitSuffix).
type Chemical struct {
	BaseModel
	Name              string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Quantity          float64         `gorm:"not null" json:"quantity"`
	Description       string          `gorm:"type:text" json:"description"`
	Vendor            string          `gorm:"type:varchar(100)" json:"vendor"`
	HazardInformation string          `gorm:"type:text" json:"hazard_information"`
	MolecularFormula  string          `gorm:"type:varchar(100)" json:"molecular_formula"`
	ReactivityGroup   ReactivityGroup `gorm:"type:varchar(255)" json:"reactivity_group" validate:"required,oneof=Alkali 'Alkaline Earth' 'Transition Metal' Lanthanide Actinide Metal Nonmetal Halogen 'Noble Gas' Other"`
	ChemicalType      ChemicalType    `gorm:"type:varchar(100);index" json:"chemical_type" validate:"required,oneof=Organic Inorganic Both"`
	ChemicalState     ChemicalState   `gorm:"type:varchar(100);index" json:"chemical_state" validate:"required,oneof=Solid Liquid Gas Plasma Other"`

	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id" validate:"uuid_required"`
	Location   *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	Expires time.Time `gorm:"type:date;not null;index" json:"expires" validate:"required"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

func (Chemical) TableName() string {
	return "chemicals"
}

// DaysUntilExpiry counts whole days from today to the expiry date.
func (c *Chemical) DaysUntilExpiry(today time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(c.Expires.Year(), c.Expires.Month(), c.Expires.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}
