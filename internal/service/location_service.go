package service

import (
	"errors"
	"fmt"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
	"go-chemoventry/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationExists   = errors.New("location name already exists")
	ErrLocationOccupied = errors.New("location still has chemicals assigned to it")
)

type LocationService interface {
	CreateLocation(req *model.Location) error
	GetLocations() ([]model.Location, error)
	GetLocationByID(id uuid.UUID) (*model.Location, error)
	UpdateLocation(id uuid.UUID, req *model.Location) (*model.Location, error)
	DeleteLocation(id uuid.UUID) error
}

type locationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) CreateLocation(req *model.Location) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.locationRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrLocationExists
	}

	return s.locationRepo.Create(req)
}

func (s *locationService) GetLocations() ([]model.Location, error) {
	return s.locationRepo.FindAll()
}

func (s *locationService) GetLocationByID(id uuid.UUID) (*model.Location, error) {
	location, err := s.locationRepo.FindByID(id)
	if err != nil {
		return nil, ErrLocationNotFound
	}
	return location, nil
}

func (s *locationService) UpdateLocation(id uuid.UUID, req *model.Location) (*model.Location, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	location, err := s.locationRepo.FindByID(id)
	if err != nil {
		return nil, ErrLocationNotFound
	}

	if req.Name != location.Name {
		existing, _ := s.locationRepo.FindByName(req.Name)
		if existing != nil && existing.ID != uuid.Nil {
			return nil, ErrLocationExists
		}
	}

	location.Name = req.Name
	if err := s.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation refuses to remove an occupied location instead of cascading
// the chemicals away with it.
func (s *locationService) DeleteLocation(id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(id); err != nil {
		return ErrLocationNotFound
	}

	count, err := s.locationRepo.CountChemicals(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLocationOccupied
	}

	return s.locationRepo.Delete(id)
}
