package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository manages the directed follows edge table.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowedBy(ctx context.Context, userID, followerID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge. Re-following is a no-op rather than an error.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	edge := models.Follows{
		UserBeingFollowedID: followeeID,
		UserFollowingID:     followerID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error; err != nil {
		if isConstraintViolation(err) {
			return models.NewIntegrityError(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_being_followed_id = ? AND user_following_id = ?", followeeID, followerID).
		Delete(&models.Follows{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IsFollowing reports whether follower follows followee.
func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follows{}).
		Where("user_being_followed_id = ? AND user_following_id = ?", followeeID, followerID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// IsFollowedBy reports whether follower follows userID. It is IsFollowing
// with the arguments flipped, kept separate to mirror the model contract.
func (r *followRepository) IsFollowedBy(ctx context.Context, userID, followerID uint) (bool, error) {
	return r.IsFollowing(ctx, followerID, userID)
}

// Followers returns the users following userID, oldest edge first.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("follows.created_at, users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Following returns the users userID follows, oldest edge first.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("follows.created_at, users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
