package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fineboard/internal/models"
	"fineboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL bounds the lifetime of an issued session token. The token lives
// entirely on the client; there is no server-side session table to expire.
const SessionTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike, so a login failure never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles credential verification and session tokens.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey []byte) *AuthService {
	return &AuthService{users: users, signingKey: signingKey}
}

// Claims defines the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Login verifies the credentials and returns a fresh signed session token.
func (s *AuthService) Login(username, password string) (string, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		// Burn a comparison anyway so the miss costs the same as a mismatch.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u.ID)
}

// ParseToken validates a session token and returns the user id it carries.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// UserByID loads the user behind a parsed token. Returns (nil, nil) when the
// record no longer exists; the caller treats that as anonymous.
func (s *AuthService) UserByID(id int) (*models.User, error) {
	return s.users.GetByID(id)
}

// demoUsers is the fixed set installed by the one-time init endpoint.
var demoUsers = []struct {
	Username string
	Password string
	Role     models.Role
}{
	{"captain", "secret", models.RoleUpper},
	{"rookie", "password", models.RoleViewer},
	{"alexkoong", "password123", models.RoleUpper},
	{"noahhernandez", "password123", models.RoleUpper},
	{"zanderbravo", "password123", models.RoleUpper},
	{"james lian", "password123", models.RoleUpper},
}

// SeedUsers installs the demo user set if the users table is empty and
// returns the number of users created. Calling it again is a no-op.
func (s *AuthService) SeedUsers() (int, error) {
	n, err := s.users.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, du := range demoUsers {
		hash, err := hashPassword(du.Password)
		if err != nil {
			return created, fmt.Errorf("seed user %q: %w", du.Username, err)
		}
		if _, err := s.users.Create(du.Username, hash, du.Role); err != nil {
			return created, fmt.Errorf("seed user %q: %w", du.Username, err)
		}
		created++
	}
	return created, nil
}

// helper: issue a signed session token for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// dummyHash keeps the unknown-user path on the same bcrypt cost as a real
// comparison.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("fineboard-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
