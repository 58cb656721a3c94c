package handlers

import (
	"context"
	"net/http"
	"strings"

	"bookmarks-backend/internal/metadata"
	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/services"
	"bookmarks-backend/internal/utils"
	pkgvalidator "bookmarks-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PageProber 抓取侧依赖，便于测试替换
type PageProber interface {
	Extract(ctx context.Context, pageURL string) *metadata.PageMetadata
	FetchFaviconAsBase64(ctx context.Context, faviconURL string) string
	ValidateURL(ctx context.Context, rawURL string) bool
}

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	prober          PageProber
	validator       *validator.Validate
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService, prober PageProber) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		prober:          prober,
		validator:       pkgvalidator.GetValidator(),
	}
}

func (h *BookmarkHandler) GetBookmarks(c *gin.Context) {
	bookmarks, err := h.bookmarkService.GetBookmarks()
	if err != nil {
		utils.HandleError(c, err, "获取书签列表失败")
		return
	}
	utils.Success(c, bookmarks)
}

// CreateBookmark 收藏流程：去查询串 → 查重 → 可达性探测 →
// 提取元信息 → 下载图标 → 入库。重复和不可达都在抓取前快速失败
func (h *BookmarkHandler) CreateBookmark(c *gin.Context) {
	var req models.BookmarkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	cleanURL, err := utils.RemoveQueryString(req.URL)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的链接")
		return
	}

	existing, err := h.bookmarkService.FindBookmarkByURL(cleanURL)
	if err != nil {
		utils.HandleError(c, err, "查询重复书签失败")
		return
	}
	if existing != nil {
		utils.Error(c, http.StatusConflict, "该链接已被收藏")
		return
	}

	ctx := c.Request.Context()
	if !h.prober.ValidateURL(ctx, cleanURL) {
		utils.Error(c, http.StatusBadRequest, "链接无法访问")
		return
	}

	// 用户给的标题优先，抓取结果兜底
	title := strings.TrimSpace(req.Title)
	var image *string
	if meta := h.prober.Extract(ctx, cleanURL); meta != nil {
		if title == "" {
			title = meta.Title
		}
		if meta.Favicon != "" {
			if data := h.prober.FetchFaviconAsBase64(ctx, meta.Favicon); data != "" {
				image = &data
			}
		}
	}

	bookmark, err := h.bookmarkService.CreateBookmark(cleanURL, title, image, req.CategoryID)
	if err != nil {
		utils.HandleError(c, err, "创建书签失败")
		return
	}

	logrus.WithFields(logrus.Fields{
		"id":   bookmark.ID,
		"host": bookmark.Host,
	}).Info("bookmark created")

	utils.Created(c, "收藏成功", bookmark)
}

func (h *BookmarkHandler) UpdateBookmark(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的书签ID")
		return
	}

	var req models.BookmarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}
	if req.CategoryID.Set && req.CategoryID.Value != nil && uuid.Validate(*req.CategoryID.Value) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	bookmark, err := h.bookmarkService.UpdateBookmark(id, &req)
	if err != nil {
		utils.HandleError(c, err, "更新书签失败")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", bookmark)
}

func (h *BookmarkHandler) DeleteBookmark(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的书签ID")
		return
	}

	if err := h.bookmarkService.DeleteBookmark(id); err != nil {
		utils.HandleError(c, err, "删除书签失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
