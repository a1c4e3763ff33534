package service

import (
	"errors"
	"time"

	"medblog/config"
	"medblog/database"
	"medblog/database/model"
	"medblog/util/crypto"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so
// a caller can not probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthorized is the single error kind returned for every token
// verification failure. Expired, tampered and malformed tokens are not
// distinguished at the boundary.
var ErrUnauthorized = errors.New("unauthorized")

// AuthService issues and verifies the signed session tokens of the admin
// surface.
type AuthService struct {
	settingService SettingService
	userService    UserService
}

func (s *AuthService) secret() ([]byte, error) {
	if env := config.GetJWTSecret(); env != "" {
		return []byte(env), nil
	}
	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

// Login verifies the credentials and returns a signed session token for
// the matched administrator.
func (s *AuthService) Login(email string, password string) (string, *model.User, error) {
	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if database.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	maxHours, err := s.settingService.GetSessionMaxHours()
	if err != nil {
		return "", nil, err
	}
	secret, err := s.secret()
	if err != nil {
		return "", nil, err
	}

	claims := jwt.MapClaims{
		"id":    user.Id,
		"email": user.Email,
		"exp":   time.Now().Add(time.Duration(maxHours) * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken parses and verifies a bearer token and resolves the
// embedded identity. Any failure collapses to ErrUnauthorized.
func (s *AuthService) ValidateToken(tokenString string) (*model.User, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrUnauthorized
	}

	user, err := s.userService.GetUserById(int(id))
	if err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
