package repository

import (
	"go-chemoventry/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFilter narrows user listings; Search matches name or email,
// case-insensitively.
type UserFilter struct {
	Search string
	Role   model.Role
}

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Deactivate(id uuid.UUID) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	FindAll(filter UserFilter) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// Deactivate soft-deletes: accounts are never removed so their activity
// history stays intact.
func (r *userRepo) Deactivate(id uuid.UUID) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) FindAll(filter UserFilter) ([]model.User, error) {
	var users []model.User
	q := r.db.Order("created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
