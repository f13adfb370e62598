package seed

import (
	"fmt"
	"log/slog"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls how much data Run generates.
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
}

// Run populates the database with a social mesh: users, their messages,
// follow edges, and likes. With ShouldClean it wipes the tables first.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumMessages <= 0 {
		opts.NumMessages = opts.NumUsers * 4
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	middleware.Logger.Info("seeded users", slog.Int("count", len(users)))

	messages := make([]*models.Message, 0, opts.NumMessages)
	for i := 0; i < opts.NumMessages; i++ {
		author := users[factory.rng.Intn(len(users))]
		message, err := factory.CreateMessage(author, 30)
		if err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		messages = append(messages, message)
	}
	middleware.Logger.Info("seeded messages", slog.Int("count", len(messages)))

	follows, err := seedFollows(db, factory, users)
	if err != nil {
		return fmt.Errorf("create follows: %w", err)
	}
	middleware.Logger.Info("seeded follows", slog.Int("count", follows))

	likes, err := seedLikes(db, factory, users, messages)
	if err != nil {
		return fmt.Errorf("create likes: %w", err)
	}
	middleware.Logger.Info("seeded likes", slog.Int("count", likes))

	return nil
}

// seedFollows gives every user a handful of random follow targets. Self
// edges are skipped; duplicates collapse via ON CONFLICT DO NOTHING.
func seedFollows(db *gorm.DB, factory *Factory, users []*models.User) (int, error) {
	count := 0
	for _, follower := range users {
		targets := factory.rng.Intn(6) + 1
		for i := 0; i < targets; i++ {
			followee := users[factory.rng.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			edge := models.Follows{
				UserBeingFollowedID: followee.ID,
				UserFollowingID:     follower.ID,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// seedLikes spreads likes over the messages, never on the liker's own.
func seedLikes(db *gorm.DB, factory *Factory, users []*models.User, messages []*models.Message) (int, error) {
	count := 0
	for _, user := range users {
		likes := factory.rng.Intn(8)
		for i := 0; i < likes; i++ {
			message := messages[factory.rng.Intn(len(messages))]
			if message.UserID == user.ID {
				continue
			}
			edge := models.Likes{UserID: user.ID, MessageID: message.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// clearData empties the tables in dependency order.
func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Likes{}, &models.Follows{}, &models.Message{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
