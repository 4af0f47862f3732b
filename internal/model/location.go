package model

// Location is a named storage place for chemicals
type Location struct {
	BaseModel
	Name string `gorm:"type:varchar(225);uniqueIndex;not null" json:"name" validate:"required"`
}

func (Location) TableName() string {
	return "locations"
}
