package validators

import "strings"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func ValidateRegisterRequest(req *RegisterRequest) ValidationErrors {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = SanitizeInput(req.Name)
	if req.Role == "" {
		req.Role = "viewer"
	}
	return ValidateStruct(req)
}

func ValidateLoginRequest(req *LoginRequest) ValidationErrors {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return ValidateStruct(req)
}

func ValidateRefreshTokenRequest(req *RefreshTokenRequest) ValidationErrors {
	return ValidateStruct(req)
}
