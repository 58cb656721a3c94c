package services

import (
	"errors"
	"strings"
	"time"

	"bookmarks-backend/internal/apperrors"
	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// GetBookmarks 按创建时间倒序返回全部书签，
// 分类和标签走 Preload 批量查询，避免 N+1
func (s *BookmarkService) GetBookmarks() ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := s.db.Preload("Category").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name") }).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, apperrors.Database("获取书签失败", err)
	}

	for i := range bookmarks {
		decorateBookmark(&bookmarks[i])
	}
	return bookmarks, nil
}

// CreateBookmark 插入书签并返回完整视图。重复 URL 去重由调用方
// 预查 FindBookmarkByURL，并发下的兜底是唯一索引
func (s *BookmarkService) CreateBookmark(url, title string, image *string, categoryID *string) (*models.Bookmark, error) {
	bookmark := models.Bookmark{
		ID:         uuid.NewString(),
		URL:        url,
		Title:      title,
		Image:      image,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
	}

	if err := s.db.Create(&bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation("该链接已被收藏")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.Validation("指定的分类不存在")
		}
		return nil, apperrors.Database("创建书签失败", err)
	}

	if bookmark.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *bookmark.CategoryID).Error; err == nil {
			bookmark.Category = &category
		}
	}

	decorateBookmark(&bookmark)
	return &bookmark, nil
}

// FindBookmarkByURL 精确查找，未命中返回 nil 而非错误
func (s *BookmarkService) FindBookmarkByURL(url string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.Preload("Category").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name") }).
		Where("url = ?", url).First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Database("查询书签失败", err)
	}

	decorateBookmark(&bookmark)
	return &bookmark, nil
}

// UpdateBookmark 局部更新，只改动提供的字段。
// tag_ids 提供时在事务内整组替换（先删后插），不做合并
func (s *BookmarkService) UpdateBookmark(id string, req *models.BookmarkUpdateRequest) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := s.db.First(&bookmark, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("书签", id)
		}
		return nil, apperrors.Database("查询书签失败", err)
	}

	// 标题允许不传，但传了就不能是空白
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validation("标题不能为空")
		}
		req.Title = &title
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.CategoryID.Set {
			updates["category_id"] = req.CategoryID.Value
		}
		if req.Read != nil {
			updates["read"] = *req.Read
		}
		if len(updates) > 0 {
			if err := tx.Model(&bookmark).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.TagIDs != nil {
			if err := tx.Where("bookmark_id = ?", id).Delete(&models.BookmarkTag{}).Error; err != nil {
				return err
			}
			if len(req.TagIDs) > 0 {
				links := make([]models.BookmarkTag, 0, len(req.TagIDs))
				for _, tagID := range req.TagIDs {
					links = append(links, models.BookmarkTag{BookmarkID: id, TagID: tagID})
				}
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.Validation("指定的分类或标签不存在")
		}
		return nil, apperrors.Database("更新书签失败", err)
	}

	return s.getBookmarkByID(id)
}

func (s *BookmarkService) DeleteBookmark(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Bookmark{})
	if result.Error != nil {
		return apperrors.Database("删除书签失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("书签", id)
	}
	return nil
}

func (s *BookmarkService) getBookmarkByID(id string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.Preload("Category").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name") }).
		First(&bookmark, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("书签", id)
	}
	if err != nil {
		return nil, apperrors.Database("查询书签失败", err)
	}

	decorateBookmark(&bookmark)
	return &bookmark, nil
}

// decorateBookmark 补齐读取边界的派生字段，host 永不入库
func decorateBookmark(b *models.Bookmark) {
	b.Host = utils.GetHost(b.URL)
	if b.Tags == nil {
		b.Tags = []models.Tag{}
	}
}
