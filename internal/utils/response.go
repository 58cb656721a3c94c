package utils

import (
	"errors"
	"net/http"

	"bookmarks-backend/internal/apperrors"
	"bookmarks-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Code:    http.StatusOK,
		Message: "成功",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, models.Response{
		Code:    code,
		Message: message,
	})
}

func ValidationError(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusUnprocessableEntity, models.Response{
		Code:    http.StatusUnprocessableEntity,
		Message: "验证失败",
		Errors:  errs,
	})
}

func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.Response{
		Code:    http.StatusInternalServerError,
		Message: "服务器内部错误",
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	c.JSON(http.StatusNotFound, models.Response{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未授权访问"
	}
	c.JSON(http.StatusUnauthorized, models.Response{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

// HandleError 按错误类别映射状态码，非应用错误一律 500
func HandleError(c *gin.Context, err error, context string) {
	logrus.WithError(err).Error(context)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		InternalError(c)
		return
	}

	switch appErr.Kind {
	case apperrors.KindNotFound:
		NotFound(c, appErr.Message)
	case apperrors.KindValidation:
		Error(c, http.StatusBadRequest, appErr.Message)
	case apperrors.KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	case apperrors.KindDatabase:
		Error(c, http.StatusInternalServerError, "数据库操作失败")
	default:
		InternalError(c)
	}
}
