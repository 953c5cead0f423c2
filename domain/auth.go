package domain

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

type LoginRequest struct {
	Username string `json:"username" valid:"required~Username is required"`
	Password string `json:"password" valid:"required~Password is required"`
}

type LoginResponse struct {
	Token     string  `json:"token"`
	UserID    int     `json:"user_id"`
	Role      string  `json:"role"`
	StaffRole *string `json:"staff_role,omitempty"`
}

type RegisterParentRequest struct {
	Username  string  `json:"username" valid:"required~Username is required"`
	Password  string  `json:"password" valid:"required~Password is required"`
	FullName  string  `json:"full_name" valid:"required~Full name is required"`
	Gender    string  `json:"gender" valid:"in(male|female)~Invalid gender,optional"`
	Email     *string `json:"email" valid:"email~Invalid email format,optional"`
	Telephone *string `json:"telephone"`
}

type Claims struct {
	UserID    int     `json:"user_id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	StaffRole *string `json:"staff_role,omitempty"`
	jwt.RegisteredClaims
}

type AuthRepo interface {
	Login(ctx context.Context, data *LoginRequest) (*LoginResponse, error)
	RegisterParent(ctx context.Context, data *RegisterParentRequest) (*User, error)
	// FindActiveUserByID backs the per-request token re-check: the row must
	// exist and still have is_active set.
	FindActiveUserByID(ctx context.Context, id int) (*User, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, data *LoginRequest) (*LoginResponse, error)
	RegisterParent(ctx context.Context, data *RegisterParentRequest) (*User, error)
	Me(ctx context.Context, userID int) (*User, error)
}
