package service

import (
	"errors"

	"medblog/database"
	"medblog/database/model"

	"gorm.io/gorm"
)

// anonymousSender is stored when a reader leaves no email.
const anonymousSender = "Anonymous"

// ErrEmptyMessage rejects feedback without a message body.
var ErrEmptyMessage = errors.New("message is required")

// FeedbackService manages reader feedback.
type FeedbackService struct{}

// Create stores a feedback entry. Email falls back to the anonymous
// sentinel, postId is optional.
func (s *FeedbackService) Create(email string, message string, postId *int) (*model.Feedback, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if email == "" {
		email = anonymousSender
	}

	feedback := &model.Feedback{
		Email:   email,
		Message: message,
		PostId:  postId,
	}
	if err := database.GetDB().Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// List returns all feedback, newest first, each entry carrying the
// title and slug of its referenced post when one is linked.
func (s *FeedbackService) List() ([]model.Feedback, error) {
	feedback := make([]model.Feedback, 0)
	err := database.GetDB().Model(&model.Feedback{}).
		Preload("Post").
		Order("created_at DESC").
		Find(&feedback).
		Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *FeedbackService) Delete(id int) error {
	result := database.GetDB().Delete(&model.Feedback{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *FeedbackService) Count() (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.Feedback{}).Count(&count).Error
	return count, err
}
