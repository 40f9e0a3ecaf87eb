package transport

// RegisterRequest is the payload for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	UserType     string `json:"user_type" validate:"omitempty,oneof=fisher seller buyer"`
	Name         string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Organization string `json:"organization,omitempty" validate:"omitempty,max=200"`
	Location     string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	Status   string `json:"status"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	UserID      string `json:"user_id"`
	UserType    string `json:"user_type"`
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
}
