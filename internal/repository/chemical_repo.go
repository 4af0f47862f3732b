package repository

import (
	"time"

	"go-chemoventry/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChemicalFilter holds the optional, AND-composed list filters. Search is a
// case-insensitive substring match over name, description and molecular
// formula (OR-composed internally).
type ChemicalFilter struct {
	ChemicalType    model.ChemicalType
	ChemicalState   model.ChemicalState
	ReactivityGroup model.ReactivityGroup
	LocationID      *uuid.UUID
	ExpiresAfter    *time.Time // inclusive
	ExpiresBefore   *time.Time // inclusive
	Search          string
}

type ChemicalRepository interface {
	Create(chemical *model.Chemical) error
	FindAll(filter ChemicalFilter) ([]model.Chemical, error)
	FindByID(id uuid.UUID) (*model.Chemical, error)
	Update(chemical *model.Chemical) error
	Delete(id uuid.UUID) error

	CountAll() (int64, error)
	CountExpiredBefore(date time.Time) (int64, error)
	CountQuantityBelow(threshold float64) (int64, error)
	FindExpiringBetween(from, to time.Time) ([]model.Chemical, error)
	FindQuantityAtMost(threshold float64) ([]model.Chemical, error)
}

type chemicalRepo struct {
	db *gorm.DB
}

func NewChemicalRepo(db *gorm.DB) ChemicalRepository {
	return &chemicalRepo{db}
}

func (r *chemicalRepo) Create(chemical *model.Chemical) error {
	return r.db.Create(chemical).Error
}

func (r *chemicalRepo) FindAll(filter ChemicalFilter) ([]model.Chemical, error) {
	var chemicals []model.Chemical
	q := r.db.Preload("Location").Preload("CreatedBy")

	if filter.ChemicalType != "" {
		q = q.Where("chemical_type = ?", filter.ChemicalType)
	}
	if filter.ChemicalState != "" {
		q = q.Where("chemical_state = ?", filter.ChemicalState)
	}
	if filter.ReactivityGroup != "" {
		q = q.Where("reactivity_group = ?", filter.ReactivityGroup)
	}
	if filter.LocationID != nil {
		q = q.Where("location_id = ?", *filter.LocationID)
	}
	if filter.ExpiresAfter != nil {
		q = q.Where("expires >= ?", *filter.ExpiresAfter)
	}
	if filter.ExpiresBefore != nil {
		q = q.Where("expires <= ?", *filter.ExpiresBefore)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"name ILIKE ? OR description ILIKE ? OR molecular_formula ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	err := q.Order("created_at DESC").Find(&chemicals).Error
	return chemicals, err
}

func (r *chemicalRepo) FindByID(id uuid.UUID) (*model.Chemical, error) {
	var chemical model.Chemical
	err := r.db.Preload("Location").Preload("CreatedBy").First(&chemical, "id = ?", id).Error
	return &chemical, err
}

func (r *chemicalRepo) Update(chemical *model.Chemical) error {
	return r.db.Save(chemical).Error
}

// Delete removes the chemical; its activities go with it via the FK cascade.
func (r *chemicalRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ChemicalActivity{}, "chemical_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chemical{}, "id = ?", id).Error
	})
}

func (r *chemicalRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Chemical{}).Count(&count).Error
	return count, err
}

func (r *chemicalRepo) CountExpiredBefore(date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Chemical{}).Where("expires < ?", date).Count(&count).Error
	return count, err
}

func (r *chemicalRepo) CountQuantityBelow(threshold float64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Chemical{}).Where("quantity < ?", threshold).Count(&count).Error
	return count, err
}

func (r *chemicalRepo) FindExpiringBetween(from, to time.Time) ([]model.Chemical, error) {
	var chemicals []model.Chemical
	err := r.db.Preload("Location").Preload("CreatedBy").
		Where("expires BETWEEN ? AND ?", from, to).
		Find(&chemicals).Error
	return chemicals, err
}

func (r *chemicalRepo) FindQuantityAtMost(threshold float64) ([]model.Chemical, error) {
	var chemicals []model.Chemical
	err := r.db.Preload("Location").
		Where("quantity <= ?", threshold).
		Find(&chemicals).Error
	return chemicals, err
}
