package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.CreateAll(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
		Password: "pw",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedMessage(t *testing.T, db *gorm.DB, userID uint, text string, at time.Time) *models.Message {
	t.Helper()
	message := &models.Message{Text: text, UserID: userID, Timestamp: at}
	require.NoError(t, db.Create(message).Error)
	return message
}

func testCtx() context.Context {
	return context.Background()
}
