// Package seed provides helpers to create demo data for development
// databases. Not for production use.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/auth"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them. A single bcrypt hash is
// computed up front and shared by every generated user so large seeds don't
// spend their time in the hasher.
type Factory struct {
	db         *gorm.DB
	rng        *rand.Rand
	passwdHash string
}

// SeedPassword is the plaintext password every generated user gets.
const SeedPassword = "password123"

// NewFactory creates a Factory bound to the given database handle.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := auth.HashPassword(SeedPassword)
	if err != nil {
		return nil, err
	}
	return &Factory{
		db:         db,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		passwdHash: hash,
	}, nil
}

// CreateUser persists a generated user. Override functions may adjust the
// user before it is saved.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:          gofakeit.Email(),
		Password:       f.passwdHash,
		Bio:            gofakeit.Sentence(8),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		HeaderImageURL: service.DefaultHeaderImageURL,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage persists a generated message for the given author, with its
// timestamp spread over the past maxDays days.
func (f *Factory) CreateMessage(user *models.User, maxDays int, overrides ...func(*models.Message)) (*models.Message, error) {
	if maxDays <= 0 {
		maxDays = 30
	}
	text := gofakeit.Sentence(f.rng.Intn(12) + 3)
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}
	message := &models.Message{
		Text:      text,
		UserID:    user.ID,
		Timestamp: time.Now().Add(-time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute),
	}
	for _, override := range overrides {
		override(message)
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
