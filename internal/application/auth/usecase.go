package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/pkg/jwt"
)

// RoleAdmin único rol emitido: el operador del negocio.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator cuenta de operador configurada por entorno (hash bcrypt).
type Operator struct {
	Email        string
	PasswordHash string
}

// AuthUseCase login del operador contra la cuenta configurada.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica email/password y genera el JWT. Credenciales incorrectas → ErrUnauthorized
// sin distinguir si falló el email o la contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "es obligatorio")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "es obligatorio")
	}
	if uc.operator.Email == "" || uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(uc.operator.Email))) == 1
	// bcrypt se evalúa siempre para que el tiempo de respuesta no revele si el email existe.
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password))
	if !emailOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Email, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Role:      RoleAdmin,
	}, nil
}
