package repository

import (
	"go-chemoventry/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *model.Location) error
	FindAll() ([]model.Location, error)
	FindByID(id uuid.UUID) (*model.Location, error)
	FindByName(name string) (*model.Location, error)
	Update(location *model.Location) error
	Delete(id uuid.UUID) error
	CountChemicals(id uuid.UUID) (int64, error)
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepo) FindAll() ([]model.Location, error) {
	var locations []model.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) FindByID(id uuid.UUID) (*model.Location, error) {
	var location model.Location
	err := r.db.First(&location, "id = ?", id).Error
	return &location, err
}

func (r *locationRepo) FindByName(name string) (*model.Location, error) {
	var location model.Location
	err := r.db.First(&location, "name = ?", name).Error
	return &location, err
}

func (r *locationRepo) Update(location *model.Location) error {
	return r.db.Save(location).Error
}

func (r *locationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Location{}, "id = ?", id).Error
}

// CountChemicals reports how many chemicals still reference the location.
// Deletion is restricted while this is non-zero.
func (r *locationRepo) CountChemicals(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Chemical{}).Where("location_id = ?", id).Count(&count).Error
	return count, err
}
