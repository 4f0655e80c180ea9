package service

import (
	"adminbase/internal/entity"
	"adminbase/internal/model"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleService 角色 CRUD 编排：角色代码在租户内唯一，删除时级联清理
// 角色-菜单与用户-角色关联。
type RoleService struct {
	repo      model.Repository
	relations *RelationService
}

// NewRoleService 创建角色服务。
func NewRoleService(repo model.Repository, relations *RelationService) *RoleService {
	return &RoleService{repo: repo, relations: relations}
}

// List 分页查询角色，并为每条记录附带生效菜单数量。
func (s *RoleService) List(ctx context.Context, query *entity.RoleQuery) (*entity.RoleListResult, error) {
	query.Normalize()
	roles, meta, err := s.repo.ListRoles(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]entity.RoleView, 0, len(roles))
	for i := range roles {
		menuCount, err := s.repo.CountRoleMenus(ctx, roles[i].UUID)
		if err != nil {
			return nil, err
		}
		list = append(list, entity.RoleView{DbRole: roles[i], MenuCount: menuCount})
	}

	return &entity.RoleListResult{
		List:     list,
		Total:    meta.Total,
		Page:     meta.Page,
		PageSize: meta.PageSize,
	}, nil
}

// Get 按 uuid 查询角色详情（附带关联菜单ID集合）。
func (s *RoleService) Get(ctx context.Context, roleUUID, platformID string) (*entity.RoleDetail, error) {
	role, err := s.repo.GetRoleByUUID(ctx, roleUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "角色不存在")
		}
		return nil, err
	}
	menuIDs, err := s.relations.RoleMenuIDs(ctx, role.UUID, platformID)
	if err != nil {
		return nil, err
	}
	return &entity.RoleDetail{DbRole: *role, MenuIDs: menuIDs}, nil
}

// Create 新建角色。代码冲突时返回 DuplicateValue；menuIds 存在时在角色
// 落库后作为后续写入重置菜单授权（两次写入，非同一事务）。
func (s *RoleService) Create(ctx context.Context, req *entity.RoleCreateRequest) (*entity.DbRole, error) {
	platformID := normalizePlatform(req.PlatformID)

	exists, err := s.repo.RoleCodeExists(ctx, req.Code, "", platformID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(KindDuplicateValue, "角色代码已存在")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusActive
	}

	role := &entity.DbRole{
		UUID:        uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		PlatformID:  platformID,
		CreatedBy:   "system",
		UpdatedBy:   "system",
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindDuplicateValue, "角色代码已存在")
		}
		return nil, err
	}

	if req.MenuIDs != nil {
		if err := s.relations.SetRoleMenus(ctx, role.UUID, *req.MenuIDs, platformID); err != nil {
			return nil, err
		}
	}
	return role, nil
}

// Update 更新角色，代码校验排除自身；menuIds 存在时重置菜单授权。
func (s *RoleService) Update(ctx context.Context, roleUUID string, req *entity.RoleUpdateRequest, platformID string) (*entity.DbRole, error) {
	platformID = normalizePlatform(platformID)

	role, err := s.repo.GetRoleByUUID(ctx, roleUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "角色不存在")
		}
		return nil, err
	}

	if req.Code != nil {
		exists, err := s.repo.RoleCodeExists(ctx, *req.Code, role.UUID, platformID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, newError(KindDuplicateValue, "角色代码已存在")
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		updates["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		updates["status"] = strings.TrimSpace(*req.Status)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateRole(ctx, role.UUID, updates); err != nil {
			return nil, err
		}
	}

	if req.MenuIDs != nil {
		if err := s.relations.SetRoleMenus(ctx, role.UUID, *req.MenuIDs, platformID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetRoleByUUID(ctx, role.UUID, platformID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除单个角色。
func (s *RoleService) Delete(ctx context.Context, roleUUID, platformID string) error {
	return s.BatchDelete(ctx, []string{roleUUID}, platformID)
}

// BatchDelete 批量删除角色，级联清理角色-菜单授权与用户-角色关联，
// 避免悬挂的角色引用残留。
func (s *RoleService) BatchDelete(ctx context.Context, uuids []string, platformID string) error {
	if len(uuids) == 0 {
		return newError(KindInvalidInput, "请提供要删除的角色ID列表")
	}
	platformID = normalizePlatform(platformID)

	if err := s.repo.DeleteRoleMenusByRoles(ctx, uuids); err != nil {
		return err
	}
	if err := s.repo.DeleteUserRolesByRoles(ctx, uuids); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteRoles(ctx, uuids, platformID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return newError(KindNotFound, "角色不存在")
	}
	return nil
}

// Menus 返回角色当前授予的菜单ID集合。
func (s *RoleService) Menus(ctx context.Context, roleUUID, platformID string) ([]string, error) {
	return s.relations.RoleMenuIDs(ctx, roleUUID, normalizePlatform(platformID))
}

// SetMenus 重置角色授予的菜单集合。
func (s *RoleService) SetMenus(ctx context.Context, roleUUID string, menuIDs []string, platformID string) error {
	if menuIDs == nil {
		return newError(KindInvalidInput, "菜单ID列表格式错误")
	}
	return s.relations.SetRoleMenus(ctx, roleUUID, menuIDs, normalizePlatform(platformID))
}
