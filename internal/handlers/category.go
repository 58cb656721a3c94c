package handlers

import (
	"net/http"

	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/services"
	"bookmarks-backend/internal/utils"
	pkgvalidator "bookmarks-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       pkgvalidator.GetValidator(),
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		utils.HandleError(c, err, "获取分类列表失败")
		return
	}
	utils.Success(c, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		utils.HandleError(c, err, "创建分类失败")
		return
	}

	utils.Created(c, "创建成功", category)
}

// RenameCategory 对外以 slug 定位分类，而非 id
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.Error(c, http.StatusBadRequest, "缺少分类 slug")
		return
	}

	var req models.CategoryRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	category, err := h.categoryService.RenameCategory(slug, req.NewName)
	if err != nil {
		utils.HandleError(c, err, "重命名分类失败")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.Error(c, http.StatusBadRequest, "缺少分类 slug")
		return
	}

	if err := h.categoryService.DeleteCategory(slug); err != nil {
		utils.HandleError(c, err, "删除分类失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var req models.CategoryReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if err := h.categoryService.ReorderCategories(req.OrderedIDs); err != nil {
		utils.HandleError(c, err, "调整分类顺序失败")
		return
	}

	utils.SuccessWithMessage(c, "排序成功", nil)
}
