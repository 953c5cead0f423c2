package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolhealth/domain"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("user with username %s already exists", user.Username)
		}
		return domain.ServerErr("could not insert user", err)
	}
	return nil
}

func (ur *userRepository) CreateStudentWithProfile(ctx context.Context, user *domain.User) error {
	err := ur.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := domain.HealthProfile{StudentID: user.UserID}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("user with username %s already exists", user.Username)
		}
		return domain.ServerErr("could not insert student", err)
	}
	return nil
}

func (ur *userRepository) FindUserByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user with ID %d not found", id)
		}
		return nil, domain.ServerErr("could not fetch user", err)
	}
	return &user, nil
}

func (ur *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user with username %s not found", username)
		}
		return nil, domain.ServerErr("could not fetch user", err)
	}
	return &user, nil
}

func (ur *userRepository) ListUsers(ctx context.Context, role string) (*[]domain.User, error) {
	var users []domain.User

	query := ur.db.WithContext(ctx).Order("created_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, domain.ServerErr("could not list users", err)
	}
	return &users, nil
}

func (ur *userRepository) SaveUser(ctx context.Context, user *domain.User) error {
	if err := ur.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("user with username %s already exists", user.Username)
		}
		return domain.ServerErr("could not update user", err)
	}
	return nil
}

func (ur *userRepository) SetUserActive(ctx context.Context, id int, active bool) error {
	result := ur.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return domain.ServerErr("could not change account state", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("user with ID %d not found", id)
	}
	return nil
}

func (ur *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := ur.db.WithContext(ctx).
		Model(&domain.User{}).
		Unscoped().
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, domain.ServerErr("could not check username", err)
	}
	return count > 0, nil
}
