package seed

import (
	"strings"
	"testing"

	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.CreateAll(db))
	return db
}

func TestRunPopulatesSocialMesh(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 8, NumMessages: 20}))

	var userCount, messageCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	assert.Equal(t, int64(8), userCount)
	assert.Equal(t, int64(20), messageCount)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	for _, u := range users {
		assert.True(t, strings.HasPrefix(u.Password, "$2a$"), "seeded passwords are bcrypt hashes")
		assert.NotEmpty(t, u.Email)
	}

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follows{}).
		Where("user_being_followed_id = user_following_id").
		Count(&selfFollows).Error)
	assert.Zero(t, selfFollows, "nobody follows themselves")

	var selfLikes int64
	require.NoError(t, db.Raw(`
		SELECT COUNT(*) FROM likes
		JOIN messages ON messages.id = likes.message_id
		WHERE messages.user_id = likes.user_id
	`).Scan(&selfLikes).Error)
	assert.Zero(t, selfLikes, "nobody likes their own message")
}

func TestRunWithCleanResetsData(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumMessages: 10}))
	require.NoError(t, Run(db, Options{NumUsers: 5, NumMessages: 10, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(5), userCount)
}

func TestFactoryCreateMessageRespectsLimit(t *testing.T) {
	db := setupSeedDB(t)
	factory, err := NewFactory(db)
	require.NoError(t, err)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		message, err := factory.CreateMessage(user, 7)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(message.Text), models.MaxMessageLength)
		assert.NotEmpty(t, message.Text)
	}
}

func TestFactoryCreateUserOverrides(t *testing.T) {
	db := setupSeedDB(t)
	factory, err := NewFactory(db)
	require.NoError(t, err)

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "fixedname"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixedname", user.Username)
}
