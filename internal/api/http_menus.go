package api

import (
	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListMenus 分页查询菜单列表
func (h *HTTPHandler) ListMenus(c *gin.Context) {
	var query entity.MenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if query.PlatformID == "" {
		query.PlatformID = platformFromQuery(c)
	}

	result, err := h.menuService.List(c.Request.Context(), &query)
	if err != nil {
		FailFromError(c, err, "查询菜单列表失败")
		return
	}
	Success(c, result, "查询成功")
}

// MenuTree 返回当前平台全部启用菜单构成的树
func (h *HTTPHandler) MenuTree(c *gin.Context) {
	tree, err := h.menuService.Tree(c.Request.Context(), platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "查询菜单树失败")
		return
	}
	Success(c, tree, "查询成功")
}

// GetMenu 查询单个菜单
func (h *HTTPHandler) GetMenu(c *gin.Context) {
	menuUUID := c.Param("uuid")
	menu, err := h.menuService.Get(c.Request.Context(), menuUUID, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "查询菜单失败")
		return
	}
	Success(c, menu, "查询成功")
}

// CreateMenu 创建菜单
func (h *HTTPHandler) CreateMenu(c *gin.Context) {
	var req entity.MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	menu, err := h.menuService.Create(c.Request.Context(), &req)
	if err != nil {
		FailFromError(c, err, "创建菜单失败")
		return
	}
	Success(c, menu, "创建成功")
}

// UpdateMenu 更新菜单，禁止把菜单挂到自己名下
func (h *HTTPHandler) UpdateMenu(c *gin.Context) {
	menuUUID := c.Param("uuid")
	var req entity.MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}

	menu, err := h.menuService.Update(c.Request.Context(), menuUUID, &req, platformFromQuery(c))
	if err != nil {
		FailFromError(c, err, "更新菜单失败")
		return
	}
	Success(c, menu, "更新成功")
}

// DeleteMenu 删除菜单，存在子菜单时拒绝
func (h *HTTPHandler) DeleteMenu(c *gin.Context) {
	menuUUID := c.Param("uuid")
	if err := h.menuService.Delete(c.Request.Context(), menuUUID, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "删除菜单失败")
		return
	}
	Success(c, nil, "删除成功")
}

// BatchDeleteMenus 批量删除菜单，任一菜单有子菜单则整体拒绝
func (h *HTTPHandler) BatchDeleteMenus(c *gin.Context) {
	var req entity.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, "请求参数错误: "+err.Error())
		return
	}
	if len(req.UUIDs) == 0 {
		Fail(c, "请选择要删除的菜单")
		return
	}

	if err := h.menuService.BatchDelete(c.Request.Context(), req.UUIDs, platformFromQuery(c)); err != nil {
		FailFromError(c, err, "批量删除菜单失败")
		return
	}
	Success(c, nil, "删除成功")
}
