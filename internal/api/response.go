package api

import (
	"adminbase/internal/entity"
	"adminbase/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// CodeSuccess 成功信封的业务码。
	CodeSuccess = 200
	// CodeFail 失败信封的业务码。
	CodeFail = -1
)

// Success 以统一信封返回成功响应，HTTP 状态恒为 200。
func Success(c *gin.Context, data interface{}, message string) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, entity.Response{
		Code:    CodeSuccess,
		Data:    data,
		Message: message,
	})
}

// Fail 以统一信封返回业务失败，HTTP 状态仍为 200。
func Fail(c *gin.Context, message string) {
	FailWithStatus(c, http.StatusOK, message)
}

// FailWithStatus 以指定 HTTP 状态返回失败信封，仅供 401/500 等边界场景。
func FailWithStatus(c *gin.Context, status int, message string) {
	if message == "" {
		message = "fail"
	}
	c.JSON(status, entity.Response{
		Code:    CodeFail,
		Message: message,
	})
}

// failBody 构造失败信封体，供中间件 AbortWithStatusJSON 使用。
func failBody(message string) entity.Response {
	return entity.Response{Code: CodeFail, Message: message}
}

// FailFromError 将服务层错误映射为失败信封：业务错误透出其提示信息，
// 其余错误记录日志并返回笼统提示，不暴露内部细节。
func FailFromError(c *gin.Context, err error, fallback string) {
	if svcErr, ok := service.AsError(err); ok {
		Fail(c, svcErr.Message)
		return
	}
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	Fail(c, fallback)
}
