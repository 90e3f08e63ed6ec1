package user

type CreateUserRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required"`
	OrganizationID string `json:"organization_id"`
}

// UpdateUserRequest only carries the two mutable profile fields. Email
// and role cannot change after creation.
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// ListUsersFilter narrows the listing for Admins, who see every
// organization by default.
type ListUsersFilter struct {
	OrganizationID string `form:"organization"`
}

type UserResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
	CreatedAt      string `json:"created_at"`
}
