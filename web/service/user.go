package service

import (
	"errors"

	"medblog/database"
	"medblog/database/model"
	"medblog/util/crypto"
)

// UserService manages administrator identities.
type UserService struct{}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the admin credentials from the CLI. Creates the
// account when the users table is empty.
func (s *UserService) UpdateFirstUser(email string, password string) error {
	if email == "" {
		return errors.New("email can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Email = email
		user.Name = "Admin"
		user.Password = hashedPassword
		return db.Create(user).Error
	} else if err != nil {
		return err
	}
	user.Email = email
	user.Password = hashedPassword
	return db.Save(user).Error
}
