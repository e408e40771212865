package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/andrewpaige1/quizset-api/models"
)

// UserInput is one user entry of a create request. JoinedOn takes an RFC 3339
// timestamp or a plain date such as "2024-01-01"; empty means now.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinedOn string `json:"joinedOn,omitempty"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users, most recently joined first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("joined_on desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return getUser(s.db.WithContext(ctx), id)
}

// Create drops entries without a name or email and inserts the rest one by
// one. A duplicate email yields a conflict error, but the entries that were
// inserted stay stored.
func (s *UserService) Create(ctx context.Context, inputs []UserInput) ([]models.User, error) {
	users := make([]models.User, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		email := strings.TrimSpace(in.Email)
		if name == "" || email == "" {
			continue
		}
		user := models.User{Name: name, Email: email}
		if joined := strings.TrimSpace(in.JoinedOn); joined != "" {
			t, err := cast.ToTimeE(joined)
			if err != nil {
				return nil, validationError(fmt.Sprintf("Invalid joinedOn date %q", joined))
			}
			user.JoinedOn = t
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, validationError("Name and email are required")
	}

	db := s.db.WithContext(ctx)
	saved := make([]models.User, 0, len(users))
	duplicate := false
	var firstErr error
	for i := range users {
		err := db.Create(&users[i]).Error
		switch {
		case err == nil:
			saved = append(saved, users[i])
		case IsDuplicateKey(err):
			log.Printf("UserService.Create: email %s already used", users[i].Email)
			duplicate = true
		default:
			log.Printf("UserService.Create: failed to insert user %s: %v", users[i].Email, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if duplicate {
		return saved, conflictError("Email already used")
	}
	if firstErr != nil {
		return saved, fmt.Errorf("insert users: %w", firstErr)
	}
	return saved, nil
}

// Delete removes a user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	db := s.db.WithContext(ctx)
	user, err := getUser(db, id)
	if err != nil {
		return nil, err
	}
	result := db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundError("User not found")
	}
	return user, nil
}

func getUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
