package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error) {
	if j.accessTokenExpirationTime <= 0 {
		return "", 0, fmt.Errorf("invalid access token expiration %s", j.accessTokenExpirationTime)
	}
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"user_id": identity.UserID,
		"role":    string(identity.Role),
		"type":    "access",
		"exp":     expiresAt,
	}
	// Tenant claims are absent until the user joins a company
	if identity.EmployeeID != "" {
		claims["employee_id"] = identity.EmployeeID
	}
	if identity.CompanyID != "" {
		claims["company_id"] = identity.CompanyID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
