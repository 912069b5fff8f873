package domain

import (
	"errors"
)

var (
	MessageSuccessGetUsers   = "success get users"
	MessageSuccessCreateUser = "user created successfully"
	MessageSuccessChangeRole = "user role updated successfully"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedGetUsers   = "failed to get users"
	MessageFailedCreateUser = "failed to create user"
	MessageFailedChangeRole = "failed to update user role"
	MessageFailedDeleteUser = "failed to delete user"

	ErrInvalidRoleID = errors.New("invalid role id")
)

type (
	AdminCreateUserRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		RoleID   string `json:"role_id" validate:"required"`
	}

	ChangeRoleRequest struct {
		RoleID string `json:"role_id" validate:"required"`
	}

	AdminUserResponse struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		RoleID uint   `json:"role_id"`
		Role   string `json:"role"`
	}
)
