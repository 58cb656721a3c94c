package services

import (
	"errors"
	"strings"
	"time"

	"bookmarks-backend/internal/apperrors"
	"bookmarks-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) GetTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name").Find(&tags).Error; err != nil {
		return nil, apperrors.Database("获取标签失败", err)
	}
	return tags, nil
}

// CreateTag 名称统一小写并去空白，重名由唯一索引拦截
func (s *TagService) CreateTag(name string) (*models.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, apperrors.Validation("标签名称不能为空")
	}

	tag := models.Tag{
		ID:        uuid.NewString(),
		Name:      normalized,
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation("同名标签已存在")
		}
		return nil, apperrors.Database("创建标签失败", err)
	}

	return &tag, nil
}

// DeleteTag 硬删除，关联行由外键级联清理
func (s *TagService) DeleteTag(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return apperrors.Database("删除标签失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("标签", id)
	}
	return nil
}

// SetBookmarkTags 整组替换书签的标签集合，先删后插，同一事务
func (s *TagService) SetBookmarkTags(bookmarkID string, tagIDs []string) ([]models.Tag, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bookmark_id = ?", bookmarkID).Delete(&models.BookmarkTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			links := make([]models.BookmarkTag, 0, len(tagIDs))
			for _, tagID := range tagIDs {
				links = append(links, models.BookmarkTag{BookmarkID: bookmarkID, TagID: tagID})
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.Validation("书签或标签不存在")
		}
		return nil, apperrors.Database("设置书签标签失败", err)
	}

	return s.GetTagsForBookmark(bookmarkID)
}

// AddTagToBookmark 幂等添加，已存在时冲突静默跳过
func (s *TagService) AddTagToBookmark(bookmarkID, tagID string) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BookmarkTag{BookmarkID: bookmarkID, TagID: tagID}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.Validation("书签或标签不存在")
		}
		return apperrors.Database("添加书签标签失败", err)
	}
	return nil
}

func (s *TagService) RemoveTagFromBookmark(bookmarkID, tagID string) error {
	err := s.db.Where("bookmark_id = ? AND tag_id = ?", bookmarkID, tagID).
		Delete(&models.BookmarkTag{}).Error
	if err != nil {
		return apperrors.Database("移除书签标签失败", err)
	}
	return nil
}

func (s *TagService) GetTagsForBookmark(bookmarkID string) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.db.Joins("JOIN bookmark_tags ON bookmark_tags.tag_id = tags.id").
		Where("bookmark_tags.bookmark_id = ?", bookmarkID).
		Order("tags.name").
		Find(&tags).Error
	if err != nil {
		return nil, apperrors.Database("获取书签标签失败", err)
	}
	return tags, nil
}
