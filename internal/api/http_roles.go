package api

import (
	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListRoles 分页查询角色列表，附带每个角色的菜单数量
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	var query entity.RoleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if query.PlatformID == "" {
		query.PlatformID = platformFromQuery(c)
	}

	result, err := h.roleService.List(c.Request.Context(), &query)
	if err != nil {
		FailFromError(c, err, "查询角色列表失败")
		return
	}
	Success(c, result, "查询成功")
}

// GetRole 查询角色详情，包含已授权菜单ID列表
func (h *HTTPHandler) GetRole(c *gin.Context) {
	roleUUID := c.Param("uuid")
	detail, err := h.roleService.Get(c.Request.Context(), roleUUID, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "查询角色失败")
		return
	}
	Success(c, detail, "查询成功")
}

// CreateRole 创建角色，可同时授权菜单
func (h *HTTPHandler) CreateRole(c *gin.Context) {
	var req entity.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), &req)
	if err != nil {
		FailFromError(c, err, "创建角色失败")
		return
	}
	Success(c, role, "创建成功")
}

// UpdateRole 更新角色，menuIds 出现时全量重置菜单授权
func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	roleUUID := c.Param("uuid")
	var req entity.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), roleUUID, &req, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "更新角色失败")
		return
	}
	Success(c, role, "更新成功")
}

// DeleteRole 删除角色，并清理其菜单授权与用户绑定
func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	roleUUID := c.Param("uuid")
	if err := h.roleService.Delete(c.Request.Context(), roleUUID, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "删除角色失败")
		return
	}
	Success(c, nil, "删除成功")
}

// BatchDeleteRoles 批量删除角色
func (h *HTTPHandler) BatchDeleteRoles(c *gin.Context) {
	var req entity.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if len(req.UUIDs) == 0 {
		Fail(c, "请选择要删除的角色")
		return
	}

	if err := h.roleService.BatchDelete(c.Request.Context(), req.UUIDs, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "批量删除角色失败")
		return
	}
	Success(c, nil, "删除成功")
}

// GetRoleMenus 查询角色已授权的菜单ID列表
func (h *HTTPHandler) GetRoleMenus(c *gin.Context) {
	roleUUID := c.Param("uuid")
	menuIDs, err := h.roleService.Menus(c.Request.Context(), roleUUID, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "查询角色菜单失败")
		return
	}
	Success(c, menuIDs, "查询成功")
}

// UpdateRoleMenus 全量重置角色的菜单授权
func (h *HTTPHandler) UpdateRoleMenus(c *gin.Context) {
	roleUUID := c.Param("uuid")
	var req entity.RoleMenusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.roleService.SetMenus(c.Request.Context(), roleUUID, req.MenuIDs, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "分配菜单失败")
		return
	}
	Success(c, nil, "分配成功")
}
