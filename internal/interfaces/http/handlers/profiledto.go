package handlers

import (
	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
)

// UpdateProfileRequest represents HTTP request to update the current account
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

func (r *UpdateProfileRequest) ToCommand(userID uint) usecases.UpdateProfileCommand {
	return usecases.UpdateProfileCommand{
		UserID:    userID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// RefreshTokenRequest carries the refresh token for clients that do not
// send cookies.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshTokenResponse represents the response for token refresh.
type RefreshTokenResponse struct {
	ExpiresIn int64 `json:"expires_in"`
}

// ChangeRoleRequest is the body of PATCH /users/:id/role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
