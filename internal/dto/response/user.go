package response

import (
	"time"

	"library-catalog/internal/data/entity"
)

type UserResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Active    bool          `json:"is_active"`
	Roles     []entity.Role `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
}

// UserDetailResponse adds the full role option list for the admin role form.
type UserDetailResponse struct {
	UserResponse
	AvailableRoles []entity.Role `json:"available_roles"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Active:    user.Active,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}

func UserToDetailResponse(user *entity.User) UserDetailResponse {
	return UserDetailResponse{
		UserResponse:   UserToResponse(user),
		AvailableRoles: entity.Roles(),
	}
}
