package repository

import (
	"time"

	"go-chemoventry/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityFilter selects activities within [Start, End]. End is expected to
// already include the whole final day. Chemical and user narrow the result.
type ActivityFilter struct {
	Start      time.Time
	End        time.Time
	ChemicalID *uuid.UUID
	UserID     *uuid.UUID
}

type ActivityRepository interface {
	Create(tx *gorm.DB, activity *model.ChemicalActivity) error
	FindAll(filter ActivityFilter) ([]model.ChemicalActivity, error)
	FindRecent(limit int) ([]model.ChemicalActivity, error)
	UsageBetween(start, end time.Time) (float64, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db}
}

// Create accepts a *gorm.DB so the write can participate in the ledger
// transaction alongside the chemical quantity update.
func (r *activityRepo) Create(tx *gorm.DB, activity *model.ChemicalActivity) error {
	return tx.Create(activity).Error
}

func (r *activityRepo) FindAll(filter ActivityFilter) ([]model.ChemicalActivity, error) {
	var activities []model.ChemicalActivity
	q := r.db.Preload("Chemical").Preload("Chemical.Location").Preload("User").
		Where("timestamp BETWEEN ? AND ?", filter.Start, filter.End)

	if filter.ChemicalID != nil {
		q = q.Where("chemical_id = ?", *filter.ChemicalID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	err := q.Order("timestamp DESC").Find(&activities).Error
	return activities, err
}

func (r *activityRepo) FindRecent(limit int) ([]model.ChemicalActivity, error) {
	var activities []model.ChemicalActivity
	err := r.db.Preload("Chemical").Preload("User").
		Order("timestamp DESC").Limit(limit).
		Find(&activities).Error
	return activities, err
}

// UsageBetween sums the absolute quantities of used/removed activities with
// timestamp in [start, end). report_generated and plain updates never count.
func (r *activityRepo) UsageBetween(start, end time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.ChemicalActivity{}).
		Where("action IN ? AND timestamp >= ? AND timestamp < ?",
			[]model.Action{model.ActionUsed, model.ActionRemoved}, start, end).
		Select("COALESCE(SUM(ABS(quantity)), 0)").
		Scan(&total).Error
	return total, err
}
