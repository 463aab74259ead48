package dto

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest is the body of POST /api/auth/google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SignupRequest is the body of POST /api/signup. Signed-up users land in the custom users table.
type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	PhoneCode  string `json:"phoneCode"`
	Department string `json:"department"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
	AuthMethod    string        `json:"authMethod,omitempty"`
}
