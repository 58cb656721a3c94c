package services

import (
	"database/sql"
	"errors"
	"strings"

	"bookmarks-backend/internal/apperrors"
	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("sort_order").Find(&categories).Error; err != nil {
		return nil, apperrors.Database("获取分类失败", err)
	}
	return categories, nil
}

// CreateCategory 在一个事务里计算 max(sort_order)+1 并插入，
// 空表时新分类排序为 0
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, apperrors.Validation("分类名称不能为空")
	}

	slug := utils.GenerateSlug(normalized)
	if slug == "" {
		return nil, apperrors.Validation("分类名称必须包含字母或数字")
	}

	category := models.Category{
		ID:   uuid.NewString(),
		Name: normalized,
		Slug: slug,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder sql.NullInt64
		if err := tx.Model(&models.Category{}).Select("MAX(sort_order)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		if maxOrder.Valid {
			category.SortOrder = int(maxOrder.Int64) + 1
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation("同名分类已存在")
		}
		return nil, apperrors.Database("创建分类失败", err)
	}

	return &category, nil
}

// RenameCategory 以 slug 为外部键重命名，slug 随新名称重新生成
func (s *CategoryService) RenameCategory(oldSlug, newName string) (*models.Category, error) {
	normalized := strings.TrimSpace(newName)
	if normalized == "" {
		return nil, apperrors.Validation("分类名称不能为空")
	}

	newSlug := utils.GenerateSlug(normalized)
	if newSlug == "" {
		return nil, apperrors.Validation("分类名称必须包含字母或数字")
	}

	result := s.db.Model(&models.Category{}).Where("slug = ?", oldSlug).
		Updates(map[string]interface{}{"name": normalized, "slug": newSlug})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation("同名分类已存在")
		}
		return nil, apperrors.Database("重命名分类失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("分类", oldSlug)
	}

	var category models.Category
	if err := s.db.First(&category, "slug = ?", newSlug).Error; err != nil {
		return nil, apperrors.Database("查询分类失败", err)
	}
	return &category, nil
}

// DeleteCategory 按 slug 硬删除，
// 关联书签的 category_id 由外键 SET NULL 置空，不另发更新语句
func (s *CategoryService) DeleteCategory(slug string) error {
	result := s.db.Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Database("删除分类失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("分类", slug)
	}
	return nil
}

// ReorderCategories 事务内按序重写 sort_order = 下标，
// 未知 id 静默跳过，不使整批失败
func (s *CategoryService) ReorderCategories(orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&models.Category{}).Where("id = ?", id).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Database("调整分类顺序失败", err)
	}
	return nil
}
