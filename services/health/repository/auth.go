package repository

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepo {
	return &authRepository{
		db: db,
	}
}

func (ar *authRepository) Login(ctx context.Context, data *domain.LoginRequest) (*domain.LoginResponse, error) {
	var user domain.User

	err := ar.db.WithContext(ctx).Where("username = ?", data.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AuthzDenied("invalid username or password")
		}
		return nil, domain.ServerErr("could not look up user", err)
	}

	if !user.IsActive {
		return nil, domain.AuthzDenied("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)); err != nil {
		return nil, domain.AuthzDenied("invalid username or password")
	}

	token, err := middleware.GenerateJWT(&user)
	if err != nil {
		return nil, domain.ServerErr("failed to generate token", err)
	}

	return &domain.LoginResponse{
		Token:     token,
		UserID:    user.UserID,
		Role:      user.Role,
		StaffRole: user.StaffRole,
	}, nil
}

func (ar *authRepository) RegisterParent(ctx context.Context, data *domain.RegisterParentRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ServerErr("failed to hash password", err)
	}

	user := domain.User{
		Username:  strings.ToLower(strings.TrimSpace(data.Username)),
		Password:  string(hash),
		Role:      domain.RoleParent,
		FullName:  data.FullName,
		Gender:    data.Gender,
		Telephone: data.Telephone,
		IsActive:  true,
	}

	if data.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*data.Email))
		if lowered != "" {
			user.Email = &lowered
		}
	}

	if err := ar.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("username or email already registered")
		}
		return nil, domain.ServerErr("could not insert parent account", err)
	}

	return &user, nil
}

func (ar *authRepository) FindActiveUserByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := ar.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", id, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user with ID %d not found or inactive", id)
		}
		return nil, domain.ServerErr("could not look up user", err)
	}
	return &user, nil
}
