package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(claims user.Claims) (token string, expiresAt int64, err error)
	ParseAccessToken(token string) (user.Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

// NewJWTService builds an HS256 token service. accessTokenExpirationTime is a
// Go duration string such as "15m" or "8h".
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenExpirationTime: exp,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(claims user.Claims) (token string, expiresAt int64, err error) {
	if !claims.Role.IsValid() {
		return "", 0, user.ErrInvalidRole
	}
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	payload := map[string]interface{}{
		"user_id": claims.UserID,
		"role":    string(claims.Role),
		"type":    tokenTypeAccess,
		"exp":     expiresAt,
	}
	if claims.EmployeeID != "" {
		payload["employee_id"] = claims.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(payload)
	return tokenString, expiresAt, err
}

// ParseAccessToken verifies the token signature and expiry and returns its claims.
func (j *JWTService) ParseAccessToken(tokenString string) (user.Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Claims{}, fmt.Errorf("%w: %v", user.ErrInvalidToken, err)
	}
	return ClaimsFromMap(token.PrivateClaims())
}

// ClaimsFromMap reads access token claims as decoded by jwtauth.
func ClaimsFromMap(m map[string]interface{}) (user.Claims, error) {
	tokenType, _ := m["type"].(string)
	if tokenType != tokenTypeAccess {
		return user.Claims{}, user.ErrInvalidToken
	}

	roleStr, _ := m["role"].(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Claims{}, user.ErrInvalidToken
	}

	userID, _ := m["user_id"].(string)
	employeeID, _ := m["employee_id"].(string)
	return user.Claims{UserID: userID, EmployeeID: employeeID, Role: role}, nil
}
