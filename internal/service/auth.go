package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt refuses longer inputs
	maxPasswordLength = 72
	tokenIssuer       = "recipeshare"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	validate        = validator.New()

	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// RegisterInput is the data needed to create an account
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService registers users, checks credentials and issues and validates bearer tokens
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register validates the input and persists a new user with a bcrypt password hash.
// It does not issue a token; callers do that once the user is committed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	verr := &ValidationError{}
	switch {
	case in.Username == "":
		verr.Add("username", "This field is required.")
	case len(in.Username) > maxUsernameLength:
		verr.Add("username", fmt.Sprintf("Ensure this field has no more than %d characters.", maxUsernameLength))
	case !usernamePattern.MatchString(in.Username):
		verr.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	if in.Email != "" {
		if err := validate.Var(in.Email, "email"); err != nil {
			verr.Add("email", "Enter a valid email address.")
		}
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if len(in.Password) > maxPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has no more than %d characters.", maxPasswordLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, duplicateUsername()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateUsername()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func duplicateUsername() error {
	return NewFieldError("username", "A user with that username already exists.")
}

// Login returns the user matching the credentials
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError(ErrInvalidCredentials.Error())
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewValidationError(ErrInvalidCredentials.Error())
	}

	return &user, nil
}

// IssueToken signs a bearer token for user
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a bearer token and checks that its user still exists
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", claims.UserID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}
	if count == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
