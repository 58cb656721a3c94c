package services

import (
	"errors"

	"bookmarks-backend/internal/apperrors"
	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, apperrors.Database("查询用户失败", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("用户名已存在")
	}

	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, apperrors.Database("查询用户失败", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("邮箱已存在")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Database("密码加密失败", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("用户名或邮箱已存在")
		}
		return nil, apperrors.Database("创建用户失败", err)
	}

	return &user, nil
}

func (s *AuthService) Login(req *models.UserLoginRequest) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Validation("邮箱或密码错误")
	}
	if err != nil {
		return nil, apperrors.Database("查询用户失败", err)
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.Validation("邮箱或密码错误")
	}

	return &user, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("用户", "")
	}
	if err != nil {
		return nil, apperrors.Database("查询用户失败", err)
	}
	return &user, nil
}
