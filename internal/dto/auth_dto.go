package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Email      string  `json:"email"      validate:"required,email"`
	Name       string  `json:"name"       validate:"required,min=2,max=100"`
	Password   string  `json:"password"   validate:"required,min=8"`
	Role       string  `json:"role"       validate:"required,oneof=ADMIN INVENTORY_MANAGER ASSET_RESPONSIBLE"`
	Department *string `json:"department"`
}

type UpdateUserRequest struct {
	Name       string  `json:"name"       validate:"omitempty,min=2,max=100"`
	Role       string  `json:"role"       validate:"omitempty,oneof=ADMIN INVENTORY_MANAGER ASSET_RESPONSIBLE"`
	Department *string `json:"department"`
	Password   string  `json:"password"   validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	IsActive   bool    `json:"is_active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}
