package service

import (
	"medblog/database"
	"medblog/database/model"

	"gorm.io/gorm"
)

// SubscriberService manages newsletter recipients.
type SubscriberService struct{}

// Subscribe persists a new subscriber. Subscribing an existing email is
// a no-op success, reported through created=false.
func (s *SubscriberService) Subscribe(email string) (*model.Subscriber, bool, error) {
	db := database.GetDB()

	existing := &model.Subscriber{}
	err := db.Model(model.Subscriber{}).
		Where("email = ?", email).
		First(existing).
		Error
	if err == nil {
		return existing, false, nil
	}
	if !database.IsNotFound(err) {
		return nil, false, err
	}

	subscriber := &model.Subscriber{Email: email}
	err = db.Create(subscriber).Error
	if database.IsDuplicate(err) {
		// lost the race against a concurrent subscribe, still a success
		err = db.Model(model.Subscriber{}).Where("email = ?", email).First(subscriber).Error
		return subscriber, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return subscriber, true, nil
}

// List returns all subscribers, newest first. Always read fresh so a
// deletion is visible to the next notification dispatch.
func (s *SubscriberService) List() ([]model.Subscriber, error) {
	subscribers := make([]model.Subscriber, 0)
	err := database.GetDB().Model(&model.Subscriber{}).
		Order("created_at DESC").
		Find(&subscribers).
		Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (s *SubscriberService) Delete(id int) error {
	result := database.GetDB().Delete(&model.Subscriber{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SubscriberService) Count() (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.Subscriber{}).Count(&count).Error
	return count, err
}
