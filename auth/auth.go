// Package auth owns user records: registration, credential checks and
// username lookups. Handlers translate its errors into user-facing notices
package auth

import (
	"errors"
	"strings"

	"mailsift/spam-api/model"
	"mailsift/spam-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrMissingFields      = errors.New("username and password required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
}

func NewService(d *gorm.DB) *Service {
	return &Service{DB: d, Argon: security.New()}
}

// Register creates a new user with a hashed password. The username must be
// non-empty after trimming and not taken yet. The unique index on username
// backs up the pre-check, so a racing duplicate insert still fails
func (s *Service) Register(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingFields
	}

	var found bool

	r := s.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ?", username).
		First(&found)
	if r.Error != nil && !errors.Is(r.Error, gorm.ErrRecordNotFound) {
		return r.Error
	}

	if found {
		return ErrUsernameTaken
	}

	hash, err := s.Argon.GenerateFromPassword(password)
	if err != nil {
		return err
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return err
	}

	return s.DB.Create(&model.User{
		ID:           userID,
		Username:     username,
		PasswordHash: hash,
	}).Error
}

// Authenticate looks a user up by exact username and checks the password.
// A missing user and a wrong password are indistinguishable to the caller.
// The returned record never carries the stored hash
func (s *Service) Authenticate(username, password string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	ok, err := s.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return &user, nil
}

// Lookup is a read-only accessor for user metadata. Absence is not an error
func (s *Service) Lookup(username string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}
