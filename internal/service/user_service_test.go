package service

import (
	"errors"
	"testing"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email string, role model.Role, password string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestGetUsersOwnership(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, "admin@chemoventry.com", model.RoleAdmin, "admin123")
	attendant := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	all, err := svc.GetUsers(admin, repository.UserFilter{})
	if err != nil {
		t.Fatalf("GetUsers as admin: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d users, want 2", len(all))
	}

	own, err := svc.GetUsers(attendant, repository.UserFilter{})
	if err != nil {
		t.Fatalf("GetUsers as attendant: %v", err)
	}
	if len(own) != 1 || own[0].Email != "tech@chemoventry.com" {
		t.Errorf("attendant sees %v, want only their own record", own)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	err := svc.ChangePassword(user.ID, &ChangePasswordRequest{
		OldPassword:     "lab12345",
		NewPassword:     "newpass99",
		ConfirmPassword: "newpass99",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if !repo.users["tech@chemoventry.com"].CheckPassword("newpass99") {
		t.Error("new password not persisted")
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	err := svc.ChangePassword(user.ID, &ChangePasswordRequest{
		OldPassword:     "wrong999",
		NewPassword:     "newpass99",
		ConfirmPassword: "newpass99",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("error = %v, want ErrWrongPassword", err)
	}
}

func TestChangePasswordMismatch(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	err := svc.ChangePassword(user.ID, &ChangePasswordRequest{
		OldPassword:     "lab12345",
		NewPassword:     "newpass99",
		ConfirmPassword: "different",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("error = %v, want ErrPasswordMismatch", err)
	}
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@chemoventry.com", model.RoleAttendant, "lab12345")
	user := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	taken := "taken@chemoventry.com"
	if _, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{Email: &taken}); !errors.Is(err, ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
}

func TestDeactivateUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "tech@chemoventry.com", model.RoleAttendant, "lab12345")
	svc := NewUserService(repo)

	if err := svc.DeactivateUser(user.ID); err != nil {
		t.Fatalf("DeactivateUser: %v", err)
	}
	if repo.users["tech@chemoventry.com"].IsActive {
		t.Error("user still active after deactivation")
	}

	if err := svc.DeactivateUser(uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
}
