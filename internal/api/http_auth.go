package api

import (
	"adminbase/internal/entity"
	"adminbase/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Login 账号密码登录，成功返回令牌及用户复合信息
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	user, info, err := h.userService.Login(c.Request.Context(), req.LoginName, req.Password, req.PlatformID, c.ClientIP())
	if err != nil {
		FailFromError(c, err, "登录失败")
		return
	}

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("生成认证令牌失败")
		FailWithStatus(c, http.StatusInternalServerError, "生成认证令牌失败")
		return
	}

	Success(c, entity.LoginResult{Token: token, UserInfo: *info}, "登录成功")
}

// UserInfo 返回当前登录用户的角色、权限与菜单树
func (h *HTTPHandler) UserInfo(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		FailWithStatus(c, http.StatusUnauthorized, "未提供认证令牌")
		return
	}

	info, err := h.userService.Info(c.Request.Context(), claims.UUID, claims.PlatformID)
	if err != nil {
		// 令牌有效但用户已不存在时按未认证处理，其余失败视为服务端异常。
		if service.IsKind(err, service.KindNotFound) {
			FailWithStatus(c, http.StatusUnauthorized, "用户不存在")
			return
		}
		if svcErr, ok := service.AsError(err); ok {
			Fail(c, svcErr.Message)
			return
		}
		logrus.WithError(err).Error("获取用户信息失败")
		FailWithStatus(c, http.StatusInternalServerError, "获取用户信息失败")
		return
	}
	Success(c, info, "获取成功")
}
