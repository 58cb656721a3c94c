package handlers

import (
	"net/http"

	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/services"
	"bookmarks-backend/internal/utils"
	pkgvalidator "bookmarks-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TagHandler struct {
	tagService *services.TagService
	validator  *validator.Validate
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  pkgvalidator.GetValidator(),
	}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		utils.HandleError(c, err, "获取标签列表失败")
		return
	}
	utils.Success(c, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(req.Name)
	if err != nil {
		utils.HandleError(c, err, "创建标签失败")
		return
	}

	utils.Created(c, "创建成功", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	if err := h.tagService.DeleteTag(id); err != nil {
		utils.HandleError(c, err, "删除标签失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// AddTagToBookmark 单个添加，重复添加为幂等空操作
func (h *TagHandler) AddTagToBookmark(c *gin.Context) {
	bookmarkID := c.Param("id")
	if uuid.Validate(bookmarkID) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的书签ID")
		return
	}

	var req models.BookmarkTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if err := h.tagService.AddTagToBookmark(bookmarkID, req.TagID); err != nil {
		utils.HandleError(c, err, "添加书签标签失败")
		return
	}

	utils.SuccessWithMessage(c, "添加成功", nil)
}

func (h *TagHandler) RemoveTagFromBookmark(c *gin.Context) {
	bookmarkID := c.Param("id")
	tagID := c.Param("tagId")
	if uuid.Validate(bookmarkID) != nil || uuid.Validate(tagID) != nil {
		utils.Error(c, http.StatusBadRequest, "无效的ID")
		return
	}

	if err := h.tagService.RemoveTagFromBookmark(bookmarkID, tagID); err != nil {
		utils.HandleError(c, err, "移除书签标签失败")
		return
	}

	utils.SuccessWithMessage(c, "移除成功", nil)
}
