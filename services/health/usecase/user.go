package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"schoolhealth/domain"
)

type userUseCase struct {
	repo    domain.UserRepo
	TimeOut time.Duration
}

func NewUserUseCase(repo domain.UserRepo, to time.Duration) domain.UserUseCase {
	return &userUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

// CreateStudent generates the student's username from their name and birth
// date, resolves collisions with the smallest free _N suffix and issues a
// random initial password.
func (uu *userUseCase) CreateStudent(ctx context.Context, req *domain.CreateStudentRequest) (*domain.CreatedStudent, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, domain.Validation("date of birth must be in YYYY-MM-DD format")
	}

	base := domain.UsernameBase(req.FullName, dob)
	if base == "" {
		return nil, domain.Validation("full name must contain at least one word")
	}

	username, err := uu.resolveUsername(ctx, base)
	if err != nil {
		return nil, err
	}

	password, err := randomPassword()
	if err != nil {
		return nil, domain.ServerErr("failed to generate password", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ServerErr("failed to hash password", err)
	}

	className := req.ClassName
	user := domain.User{
		Username:    username,
		Password:    string(hash),
		Role:        domain.RoleStudent,
		FullName:    req.FullName,
		Gender:      req.Gender,
		ClassName:   &className,
		DateOfBirth: &dob,
		Telephone:   req.Telephone,
		IsActive:    true,
	}

	if err := uu.repo.CreateStudentWithProfile(ctx, &user); err != nil {
		return nil, err
	}

	return &domain.CreatedStudent{User: &user, Password: password}, nil
}

func (uu *userUseCase) resolveUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		taken, err := uu.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

func (uu *userUseCase) CreateStaff(ctx context.Context, req *domain.CreateStaffRequest) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	if req.Role == domain.RoleMedicalStaff {
		if req.StaffRole == nil || !domain.ValidStaffRole(*req.StaffRole) {
			return nil, domain.Validation("staff role must be %s, %s or %s",
				domain.StaffRoleNurse, domain.StaffRoleDoctor, domain.StaffRoleAssistant)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ServerErr("failed to hash password", err)
	}

	user := domain.User{
		Username:  strings.ToLower(strings.TrimSpace(req.Username)),
		Password:  string(hash),
		Role:      req.Role,
		FullName:  req.FullName,
		Telephone: req.Telephone,
		IsActive:  true,
	}

	if req.Role == domain.RoleMedicalStaff {
		user.StaffRole = req.StaffRole
	}

	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		if lowered != "" {
			user.Email = &lowered
		}
	}

	if err := uu.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (uu *userUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	return uu.repo.FindUserByID(ctx, id)
}

func (uu *userUseCase) ListUsers(ctx context.Context, role string) (*[]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	return uu.repo.ListUsers(ctx, role)
}

func (uu *userUseCase) UpdateUser(ctx context.Context, id int, req *domain.UpdateUserRequest) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	user, err := uu.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		user.Email = &lowered
	}
	if req.Telephone != nil {
		user.Telephone = req.Telephone
	}
	if req.ClassName != nil {
		if user.Role != domain.RoleStudent {
			return nil, domain.Validation("class name only applies to students")
		}
		user.ClassName = req.ClassName
	}
	if req.StaffRole != nil {
		if user.Role != domain.RoleMedicalStaff {
			return nil, domain.Validation("staff role only applies to medical staff")
		}
		if !domain.ValidStaffRole(*req.StaffRole) {
			return nil, domain.Validation("staff role must be %s, %s or %s",
				domain.StaffRoleNurse, domain.StaffRoleDoctor, domain.StaffRoleAssistant)
		}
		user.StaffRole = req.StaffRole
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.ServerErr("failed to hash password", err)
		}
		user.Password = string(hash)
	}

	if err := uu.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uu *userUseCase) DeactivateUser(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	return uu.repo.SetUserActive(ctx, id, false)
}

func (uu *userUseCase) ReactivateUser(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	return uu.repo.SetUserActive(ctx, id, true)
}

func randomPassword() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
