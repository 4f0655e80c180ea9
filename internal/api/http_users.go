package api

import (
	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListUsers 分页查询用户列表
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if query.PlatformID == "" {
		query.PlatformID = platformFromQuery(c)
	}

	result, err := h.userService.List(c.Request.Context(), &query)
	if err != nil {
		FailFromError(c, err, "查询用户列表失败")
		return
	}
	Success(c, result, "查询成功")
}

// CreateUser 创建用户
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	view, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		FailFromError(c, err, "创建用户失败")
		return
	}
	Success(c, view, "创建成功")
}

// UpdateUser 更新用户资料，仅更新请求中出现的字段
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	userUUID := c.Param("uuid")
	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	view, err := h.userService.Update(c.Request.Context(), userUUID, &req, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "更新用户失败")
		return
	}
	Success(c, view, "更新成功")
}

// DeleteUser 删除单个用户，同时清理其角色关联
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	userUUID := c.Param("uuid")
	if err := h.userService.Delete(c.Request.Context(), userUUID, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "删除用户失败")
		return
	}
	Success(c, nil, "删除成功")
}

// BatchDeleteUsers 批量删除用户
func (h *HTTPHandler) BatchDeleteUsers(c *gin.Context) {
	var req entity.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if len(req.UUIDs) == 0 {
		Fail(c, "请选择要删除的用户")
		return
	}

	if err := h.userService.BatchDelete(c.Request.Context(), req.UUIDs, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "批量删除用户失败")
		return
	}
	Success(c, nil, "删除成功")
}

// UpdateUserRoles 全量重置用户的角色集合
func (h *HTTPHandler) UpdateUserRoles(c *gin.Context) {
	userUUID := c.Param("uuid")
	var req entity.UserRolesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	view, err := h.userService.SetRoles(c.Request.Context(), userUUID, req.RoleIDs, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "分配角色失败")
		return
	}
	Success(c, view, "分配成功")
}
