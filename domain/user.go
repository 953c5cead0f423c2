package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin        = "admin"
	RoleStudent      = "student"
	RoleParent       = "parent"
	RoleMedicalStaff = "medicalStaff"
)

const (
	StaffRoleNurse     = "Nurse"
	StaffRoleDoctor    = "Doctor"
	StaffRoleAssistant = "Healthcare Assistant"
)

// User is the single identity table for every role. Role-specific fields are
// nullable and only populated for the matching role tag.
type User struct {
	UserID      int            `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username    string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"`
	Role        string         `gorm:"type:varchar(20);not null;index" json:"role"`
	FullName    string         `gorm:"type:varchar(150);not null" json:"full_name" valid:"required~Full name is required"`
	Gender      string         `gorm:"type:varchar(10)" json:"gender" valid:"in(male|female)~Invalid gender,optional"`
	Email       *string        `gorm:"type:varchar(150);uniqueIndex" json:"email,omitempty" valid:"email~Invalid email format,optional"`
	Telephone   *string        `gorm:"type:varchar(15)" json:"telephone,omitempty"`
	ClassName   *string        `gorm:"type:varchar(20)" json:"class_name,omitempty"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	StaffRole   *string        `gorm:"type:varchar(30)" json:"staff_role,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func ValidStaffRole(role string) bool {
	switch role {
	case StaffRoleNurse, StaffRoleDoctor, StaffRoleAssistant:
		return true
	}
	return false
}

type CreateStudentRequest struct {
	FullName    string  `json:"full_name" valid:"required~Full name is required"`
	Gender      string  `json:"gender" valid:"required~Gender is required,in(male|female)~Invalid gender"`
	ClassName   string  `json:"class_name" valid:"required~Class name is required"`
	DateOfBirth string  `json:"date_of_birth" valid:"required~Date of birth is required"`
	Telephone   *string `json:"telephone"`
}

// CreatedStudent carries the generated credentials back to the admin once.
type CreatedStudent struct {
	User     *User  `json:"user"`
	Password string `json:"password"`
}

type CreateStaffRequest struct {
	Username  string  `json:"username" valid:"required~Username is required"`
	Password  string  `json:"password" valid:"required~Password is required"`
	FullName  string  `json:"full_name" valid:"required~Full name is required"`
	Role      string  `json:"role" valid:"required~Role is required,in(admin|medicalStaff)~Role must be admin or medicalStaff"`
	StaffRole *string `json:"staff_role"`
	Email     *string `json:"email" valid:"email~Invalid email format,optional"`
	Telephone *string `json:"telephone"`
}

type UpdateUserRequest struct {
	FullName  *string `json:"full_name"`
	Gender    *string `json:"gender"`
	Email     *string `json:"email" valid:"email~Invalid email format,optional"`
	Telephone *string `json:"telephone"`
	ClassName *string `json:"class_name"`
	StaffRole *string `json:"staff_role"`
	Password  *string `json:"password"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	// CreateStudentWithProfile inserts the student and an empty health
	// profile in one transaction.
	CreateStudentWithProfile(ctx context.Context, user *User) error
	FindUserByID(ctx context.Context, id int) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context, role string) (*[]User, error)
	SaveUser(ctx context.Context, user *User) error
	SetUserActive(ctx context.Context, id int, active bool) error
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type UserUseCase interface {
	CreateStudent(ctx context.Context, req *CreateStudentRequest) (*CreatedStudent, error)
	CreateStaff(ctx context.Context, req *CreateStaffRequest) (*User, error)
	GetUser(ctx context.Context, id int) (*User, error)
	ListUsers(ctx context.Context, role string) (*[]User, error)
	UpdateUser(ctx context.Context, id int, req *UpdateUserRequest) (*User, error)
	DeactivateUser(ctx context.Context, id int) error
	ReactivateUser(ctx context.Context, id int) error
}
