package service

import (
	"errors"
	"fmt"
	"time"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
	"go-chemoventry/internal/ws"
	"go-chemoventry/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrChemicalNotFound = errors.New("chemical not found")
	ErrInvalidAction    = errors.New("invalid activity action")
)

type InventoryService interface {
	CreateChemical(req *model.Chemical, creatorID uuid.UUID) error
	GetChemicals(filter repository.ChemicalFilter) ([]model.Chemical, error)
	GetChemicalByID(id uuid.UUID) (*model.Chemical, error)
	UpdateChemical(id uuid.UUID, req *model.Chemical) (*model.Chemical, error)
	DeleteChemical(id uuid.UUID) error

	RecordActivity(req *RecordActivityRequest, userID uuid.UUID) (*model.ChemicalActivity, error)
	GetActivities(filter repository.ActivityFilter) ([]model.ChemicalActivity, error)
}

// RecordActivityRequest is the ledger write contract. Quantity is a signed
// delta for add/remove kinds and the new absolute total for "updated".
type RecordActivityRequest struct {
	ChemicalID uuid.UUID    `json:"chemical_id" validate:"uuid_required"`
	Action     model.Action `json:"action" validate:"required"`
	Quantity   float64      `json:"quantity"`
	Notes      string       `json:"notes"`
}

type inventoryService struct {
	chemicalRepo repository.ChemicalRepository
	activityRepo repository.ActivityRepository
	locationRepo repository.LocationRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewInventoryService(
	chemicalRepo repository.ChemicalRepository,
	activityRepo repository.ActivityRepository,
	locationRepo repository.LocationRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		chemicalRepo: chemicalRepo,
		activityRepo: activityRepo,
		locationRepo: locationRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *inventoryService) CreateChemical(req *model.Chemical, creatorID uuid.UUID) error {
	// 1. Validate struct
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Location must exist
	if _, err := s.locationRepo.FindByID(req.LocationID); err != nil {
		return ErrLocationNotFound
	}

	req.CreatedByID = creatorID
	if err := s.chemicalRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.Publish("chemical_created", chemicalEvent(req))
	return nil
}

func (s *inventoryService) GetChemicals(filter repository.ChemicalFilter) ([]model.Chemical, error) {
	return s.chemicalRepo.FindAll(filter)
}

func (s *inventoryService) GetChemicalByID(id uuid.UUID) (*model.Chemical, error) {
	chemical, err := s.chemicalRepo.FindByID(id)
	if err != nil {
		return nil, ErrChemicalNotFound
	}
	return chemical, nil
}

func (s *inventoryService) UpdateChemical(id uuid.UUID, req *model.Chemical) (*model.Chemical, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.chemicalRepo.FindByID(id)
	if err != nil {
		return nil, ErrChemicalNotFound
	}

	if _, err := s.locationRepo.FindByID(req.LocationID); err != nil {
		return nil, ErrLocationNotFound
	}

	existing.Name = req.Name
	existing.Quantity = req.Quantity
	existing.Description = req.Description
	existing.Vendor = req.Vendor
	existing.HazardInformation = req.HazardInformation
	existing.MolecularFormula = req.MolecularFormula
	existing.ReactivityGroup = req.ReactivityGroup
	existing.ChemicalType = req.ChemicalType
	existing.ChemicalState = req.ChemicalState
	existing.LocationID = req.LocationID
	existing.Expires = req.Expires

	if err := s.chemicalRepo.Update(existing); err != nil {
		return nil, err
	}

	s.wsHub.Publish("chemical_updated", chemicalEvent(existing))
	return existing, nil
}

func (s *inventoryService) DeleteChemical(id uuid.UUID) error {
	if _, err := s.chemicalRepo.FindByID(id); err != nil {
		return ErrChemicalNotFound
	}
	if err := s.chemicalRepo.Delete(id); err != nil {
		return err
	}
	s.wsHub.Publish("chemical_deleted", map[string]interface{}{"id": id})
	return nil
}

// RecordActivity persists the audit row and adjusts the chemical's quantity
// as one atomic unit. The chemical row is locked for the duration of the
// transaction so concurrent writes for the same chemical cannot lose updates.
func (s *inventoryService) RecordActivity(req *RecordActivityRequest, userID uuid.UUID) (*model.ChemicalActivity, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !model.ValidAction(req.Action) {
		return nil, ErrInvalidAction
	}

	var activity *model.ChemicalActivity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var chemical model.Chemical
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&chemical, "id = ?", req.ChemicalID).Error; err != nil {
			return ErrChemicalNotFound
		}

		newQuantity, err := model.ApplyQuantity(chemical.Quantity, req.Action, req.Quantity)
		if err != nil {
			return err
		}

		if req.Action.MutatesQuantity() {
			if err := tx.Model(&model.Chemical{}).
				Where("id = ?", chemical.ID).
				Update("quantity", newQuantity).Error; err != nil {
				return err
			}
		}

		activity = &model.ChemicalActivity{
			ID:         uuid.New(),
			Action:     req.Action,
			Quantity:   req.Quantity,
			Timestamp:  time.Now(),
			Notes:      req.Notes,
			ChemicalID: chemical.ID,
			UserID:     userID,
		}
		return s.activityRepo.Create(tx, activity)
	})

	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("activity_recorded", map[string]interface{}{
		"id":          activity.ID,
		"action":      activity.Action,
		"quantity":    activity.Quantity,
		"chemical_id": activity.ChemicalID,
		"user_id":     activity.UserID,
		"timestamp":   activity.Timestamp,
	})

	return activity, nil
}

func (s *inventoryService) GetActivities(filter repository.ActivityFilter) ([]model.ChemicalActivity, error) {
	return s.activityRepo.FindAll(filter)
}

func chemicalEvent(c *model.Chemical) map[string]interface{} {
	return map[string]interface{}{
		"id":             c.ID,
		"name":           c.Name,
		"quantity":       c.Quantity,
		"chemical_state": c.ChemicalState,
		"location_id":    c.LocationID,
		"expires":        c.Expires,
	}
}
