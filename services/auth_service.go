package services

import (
	"errors"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
	"github.com/rajwani-7/Mediguard/utils"
)

func RegisterUser(name, username, email, password string) error {
	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return errors.New("username already exists")
	}
	config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return errors.New("email already registered")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:     name,
		Username: username,
		Email:    email,
		Password: hashed,
	}
	return config.DB.Create(&user).Error
}

func AuthenticateUser(username, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return "", errors.New("invalid username or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid username or password")
	}
	return utils.GenerateJWT(user.Username)
}

func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
