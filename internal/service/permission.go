package service

import (
	"adminbase/internal/entity"
	"adminbase/internal/model"
	"context"
)

// PermissionService 基于 user→role→menu 两级多对多关系推导用户的有效
// 权限集与可见菜单树。每次调用都直接从存储层重新计算，不做进程内缓存。
type PermissionService struct {
	repo model.Repository
}

// NewPermissionService 创建权限解析服务。
func NewPermissionService(repo model.Repository) *PermissionService {
	return &PermissionService{repo: repo}
}

// ResolvePermissions 聚合用户全部启用角色的启用菜单所声明的权限标识，
// 去重后返回。无角色用户直接得到空集。
func (s *PermissionService) ResolvePermissions(ctx context.Context, userUUID, platformID string) ([]string, error) {
	roleIDs, err := s.repo.ListUserRoleIDs(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []string{}, nil
	}
	return s.ResolvePermissionsByRoles(ctx, roleIDs, platformID)
}

// ResolvePermissionsByRoles 聚合给定角色集合的权限标识。
func (s *PermissionService) ResolvePermissionsByRoles(ctx context.Context, roleIDs []string, platformID string) ([]string, error) {
	menuIDs, err := s.repo.ListRoleMenuIDs(ctx, roleIDs, platformID)
	if err != nil {
		return nil, err
	}
	if len(menuIDs) == 0 {
		return []string{}, nil
	}

	menus, err := s.repo.FindActiveMenusByUUIDs(ctx, menuIDs, platformID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(menus))
	permissions := make([]string, 0, len(menus))
	for i := range menus {
		permission := menus[i].Permission
		if permission == "" {
			continue
		}
		if _, dup := seen[permission]; dup {
			continue
		}
		seen[permission] = struct{}{}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}

// ResolveUserMenus 计算用户可见的菜单树：启用角色授予的启用菜单按 sort
// 升序取出后交给 BuildMenuTree 组装。
func (s *PermissionService) ResolveUserMenus(ctx context.Context, userUUID, platformID string) ([]*entity.MenuTreeNode, error) {
	roleIDs, err := s.repo.ListUserRoleIDs(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []*entity.MenuTreeNode{}, nil
	}

	menuIDs, err := s.repo.ListRoleMenuIDs(ctx, roleIDs, platformID)
	if err != nil {
		return nil, err
	}
	if len(menuIDs) == 0 {
		return []*entity.MenuTreeNode{}, nil
	}

	menus, err := s.repo.FindActiveMenusByUUIDs(ctx, menuIDs, platformID)
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus), nil
}

// ActiveRoles 返回用户持有的启用角色摘要，供用户视图装配使用。
func (s *PermissionService) ActiveRoles(ctx context.Context, userUUID string) ([]entity.RoleBrief, error) {
	roleIDs, err := s.repo.ListUserRoleIDs(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []entity.RoleBrief{}, nil
	}
	roles, err := s.repo.FindActiveRolesByUUIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	briefs := make([]entity.RoleBrief, 0, len(roles))
	for i := range roles {
		role := &roles[i]
		briefs = append(briefs, entity.RoleBrief{
			UUID:        role.UUID,
			Name:        role.Name,
			Code:        role.Code,
			Description: role.Description,
			Status:      role.Status,
		})
	}
	return briefs, nil
}
