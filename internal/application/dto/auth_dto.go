package dto

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"ops@example.com"`
	Password string `json:"password"`
}

// LoginResponse token JWT del operador.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // "Bearer"
	ExpiresIn int    `json:"expires_in"` // segundos
	Role      string `json:"role"`
}
