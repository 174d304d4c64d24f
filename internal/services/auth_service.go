package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// AuthService handles back-office authentication: bcrypt password storage
// and HS256 JWT issuance for store users.
type AuthService struct {
	stores    *repository.StoresRepository
	jwtSecret []byte
	jwtExpiry time.Duration
	logger    *logrus.Entry
}

func NewAuthService(stores *repository.StoresRepository, jwtSecret string, jwtExpiry time.Duration, logger *logrus.Logger) *AuthService {
	return &AuthService{
		stores:    stores,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		logger:    logger.WithField("component", "auth-service"),
	}
}

// Claims carried by issued tokens
type Claims struct {
	UserID      string   `json:"userId"`
	TenantID    string   `json:"tenantId"`
	StoreID     string   `json:"storeId"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Login verifies the password and issues a token. Invalid email and invalid
// password return the same error to avoid account probing.
func (s *AuthService) Login(tenantID string, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.stores.GetStoreUserByEmail(tenantID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	expiresAt := time.Now().Add(s.jwtExpiry)
	claims := Claims{
		UserID:      user.ID.String(),
		TenantID:    user.TenantID,
		StoreID:     user.StoreID.String(),
		Email:       user.Email,
		Role:        string(user.Role),
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.stores.RecordLogin(tenantID, user.ID); err != nil {
		s.logger.WithError(err).WithField("userId", user.ID).Warn("Failed to record login")
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// CreateUser hashes the password and registers a store user
func (s *AuthService) CreateUser(tenantID string, storeID uuid.UUID, req *models.CreateStoreUserRequest) (*models.StoreUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.StoreUserRoleSeller
	}

	user := &models.StoreUser{
		StoreID:      storeID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  models.StringList(req.Permissions),
		IsCreator:    req.IsCreator,
		Active:       true,
	}

	if err := s.stores.CreateStoreUser(tenantID, user); err != nil {
		return nil, fmt.Errorf("failed to create store user: %w", err)
	}
	return user, nil
}

// ParseToken validates and decodes a token
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
