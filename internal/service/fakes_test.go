package service

import (
	"errors"
	"math"
	"time"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeChemicalRepo serves chemicals from an in-memory slice, applying the
// same filter semantics as the real repository.
type fakeChemicalRepo struct {
	chemicals []model.Chemical
	err       error
}

func (f *fakeChemicalRepo) Create(chemical *model.Chemical) error {
	f.chemicals = append(f.chemicals, *chemical)
	return f.err
}

func (f *fakeChemicalRepo) FindAll(filter repository.ChemicalFilter) ([]model.Chemical, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Chemical
	for _, c := range f.chemicals {
		if filter.LocationID != nil && c.LocationID != *filter.LocationID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeChemicalRepo) FindByID(id uuid.UUID) (*model.Chemical, error) {
	for i := range f.chemicals {
		if f.chemicals[i].ID == id {
			return &f.chemicals[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeChemicalRepo) Update(chemical *model.Chemical) error { return f.err }
func (f *fakeChemicalRepo) Delete(id uuid.UUID) error             { return f.err }

func (f *fakeChemicalRepo) CountAll() (int64, error) {
	return int64(len(f.chemicals)), f.err
}

func (f *fakeChemicalRepo) CountExpiredBefore(date time.Time) (int64, error) {
	var count int64
	for _, c := range f.chemicals {
		if c.Expires.Before(date) {
			count++
		}
	}
	return count, f.err
}

func (f *fakeChemicalRepo) CountQuantityBelow(threshold float64) (int64, error) {
	var count int64
	for _, c := range f.chemicals {
		if c.Quantity < threshold {
			count++
		}
	}
	return count, f.err
}

func (f *fakeChemicalRepo) FindExpiringBetween(from, to time.Time) ([]model.Chemical, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Chemical
	for _, c := range f.chemicals {
		if !c.Expires.Before(from) && !c.Expires.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChemicalRepo) FindQuantityAtMost(threshold float64) ([]model.Chemical, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Chemical
	for _, c := range f.chemicals {
		if c.Quantity <= threshold {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeUserRepo keys accounts by email and ID.
type fakeUserRepo struct {
	users map[string]*model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	f.users[user.Email] = user
	return f.err
}

func (f *fakeUserRepo) Deactivate(id uuid.UUID) error {
	for _, u := range f.users {
		if u.ID == id {
			u.IsActive = false
			return f.err
		}
	}
	return errors.New("record not found")
}

func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Password = hashedPassword
			return f.err
		}
	}
	return errors.New("record not found")
}

func (f *fakeUserRepo) FindAll(filter repository.UserFilter) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.User
	for _, u := range f.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

// fakeLocationRepo keys locations by ID; chemicalCounts feeds CountChemicals.
type fakeLocationRepo struct {
	locations      map[uuid.UUID]*model.Location
	chemicalCounts map[uuid.UUID]int64
	err            error
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{
		locations:      make(map[uuid.UUID]*model.Location),
		chemicalCounts: make(map[uuid.UUID]int64),
	}
}

func (f *fakeLocationRepo) Create(location *model.Location) error {
	if f.err != nil {
		return f.err
	}
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) FindAll() ([]model.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Location
	for _, l := range f.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocationRepo) FindByID(id uuid.UUID) (*model.Location, error) {
	if l, ok := f.locations[id]; ok {
		return l, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeLocationRepo) FindByName(name string) (*model.Location, error) {
	for _, l := range f.locations {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeLocationRepo) Update(location *model.Location) error {
	f.locations[location.ID] = location
	return f.err
}

func (f *fakeLocationRepo) Delete(id uuid.UUID) error {
	delete(f.locations, id)
	return f.err
}

func (f *fakeLocationRepo) CountChemicals(id uuid.UUID) (int64, error) {
	return f.chemicalCounts[id], f.err
}

// fakeActivityRepo serves activities from an in-memory slice; callers store
// them newest first.
type fakeActivityRepo struct {
	activities []model.ChemicalActivity
	err        error
}

func (f *fakeActivityRepo) Create(tx *gorm.DB, activity *model.ChemicalActivity) error {
	f.activities = append([]model.ChemicalActivity{*activity}, f.activities...)
	return f.err
}

func (f *fakeActivityRepo) FindAll(filter repository.ActivityFilter) ([]model.ChemicalActivity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.ChemicalActivity
	for _, a := range f.activities {
		if a.Timestamp.Before(filter.Start) || a.Timestamp.After(filter.End) {
			continue
		}
		if filter.ChemicalID != nil && a.ChemicalID != *filter.ChemicalID {
			continue
		}
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeActivityRepo) FindRecent(limit int) ([]model.ChemicalActivity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.activities) {
		limit = len(f.activities)
	}
	return f.activities[:limit], nil
}

func (f *fakeActivityRepo) UsageBetween(start, end time.Time) (float64, error) {
	var total float64
	for _, a := range f.activities {
		if !a.Action.CountsAsUsage() {
			continue
		}
		if a.Timestamp.Before(start) || !a.Timestamp.Before(end) {
			continue
		}
		total += math.Abs(a.Quantity)
	}
	return total, f.err
}
