package service

import (
	"adminbase/internal/entity"
	"adminbase/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuService 菜单 CRUD 编排：删除受子菜单引用保护，不做级联。
type MenuService struct {
	repo model.Repository
}

// NewMenuService 创建菜单服务。
func NewMenuService(repo model.Repository) *MenuService {
	return &MenuService{repo: repo}
}

// List 分页查询菜单。
func (s *MenuService) List(ctx context.Context, query *entity.MenuQuery) (*entity.MenuListResult, error) {
	query.Normalize()
	menus, meta, err := s.repo.ListMenus(ctx, query)
	if err != nil {
		return nil, err
	}
	if menus == nil {
		menus = []entity.DbMenu{}
	}
	return &entity.MenuListResult{
		List:     menus,
		Total:    meta.Total,
		Page:     meta.Page,
		PageSize: meta.PageSize,
	}, nil
}

// Tree 返回租户全部启用菜单组成的树。
func (s *MenuService) Tree(ctx context.Context, platformID string) ([]*entity.MenuTreeNode, error) {
	menus, err := s.repo.ListActiveMenus(ctx, normalizePlatform(platformID))
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus), nil
}

// Get 按 uuid 查询菜单详情。
func (s *MenuService) Get(ctx context.Context, menuUUID, platformID string) (*entity.DbMenu, error) {
	menu, err := s.repo.GetMenuByUUID(ctx, menuUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "菜单不存在")
		}
		return nil, err
	}
	return menu, nil
}

// Create 新建菜单。
func (s *MenuService) Create(ctx context.Context, req *entity.MenuCreateRequest) (*entity.DbMenu, error) {
	menuType := strings.TrimSpace(req.Type)
	if menuType == "" {
		menuType = entity.MenuTypeMenu
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusActive
	}

	menu := &entity.DbMenu{
		UUID:       uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Path:       strings.TrimSpace(req.Path),
		Component:  strings.TrimSpace(req.Component),
		Icon:       strings.TrimSpace(req.Icon),
		ParentID:   strings.TrimSpace(req.ParentID),
		Type:       menuType,
		Permission: strings.TrimSpace(req.Permission),
		Sort:       req.Sort,
		Status:     status,
		PlatformID: normalizePlatform(req.PlatformID),
		CreatedBy:  "system",
		UpdatedBy:  "system",
	}
	if err := s.repo.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// Update 更新菜单。禁止把菜单挂到自己名下。
func (s *MenuService) Update(ctx context.Context, menuUUID string, req *entity.MenuUpdateRequest, platformID string) (*entity.DbMenu, error) {
	platformID = normalizePlatform(platformID)

	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) == menuUUID {
		return nil, newError(KindInvalidInput, "不能将菜单设置为自己的子菜单")
	}

	menu, err := s.repo.GetMenuByUUID(ctx, menuUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "菜单不存在")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Path != nil {
		updates["path"] = strings.TrimSpace(*req.Path)
	}
	if req.Component != nil {
		updates["component"] = strings.TrimSpace(*req.Component)
	}
	if req.Icon != nil {
		updates["icon"] = strings.TrimSpace(*req.Icon)
	}
	if req.ParentID != nil {
		updates["parent_id"] = strings.TrimSpace(*req.ParentID)
	}
	if req.Type != nil {
		updates["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Permission != nil {
		updates["permission"] = strings.TrimSpace(*req.Permission)
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Status != nil {
		updates["status"] = strings.TrimSpace(*req.Status)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateMenu(ctx, menu.UUID, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetMenuByUUID(ctx, menu.UUID, platformID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除单个菜单。存在子菜单引用时拒绝删除，父子均保持不变。
func (s *MenuService) Delete(ctx context.Context, menuUUID, platformID string) error {
	platformID = normalizePlatform(platformID)

	childCount, err := s.repo.CountMenuChildren(ctx, menuUUID)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return newError(KindHasChildren, "该菜单下有子菜单，不能删除")
	}

	deleted, err := s.repo.DeleteMenus(ctx, []string{menuUUID}, platformID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return newError(KindNotFound, "菜单不存在")
	}
	return nil
}

// BatchDelete 批量删除菜单，全有或全无：先校验每个目标都没有子菜单，
// 任何一个被引用则整批拒绝且不删除任何行，错误信息指明被阻塞的菜单。
func (s *MenuService) BatchDelete(ctx context.Context, uuids []string, platformID string) error {
	if len(uuids) == 0 {
		return newError(KindInvalidInput, "请提供要删除的菜单ID列表")
	}
	platformID = normalizePlatform(platformID)

	for _, menuUUID := range uuids {
		childCount, err := s.repo.CountMenuChildren(ctx, menuUUID)
		if err != nil {
			return err
		}
		if childCount == 0 {
			continue
		}
		name := menuUUID
		if menu, err := s.repo.GetMenuByUUID(ctx, menuUUID, platformID); err == nil {
			name = menu.Name
		}
		return newError(KindHasChildren, fmt.Sprintf("菜单\"%s\"下有子菜单，不能删除", name))
	}

	if _, err := s.repo.DeleteMenus(ctx, uuids, platformID); err != nil {
		return err
	}
	return nil
}
