package service

import (
	"adminbase/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// RelationService 维护 user↔role、role↔menu 两张关联表，统一采用
// “整体替换”语义而非增量修补。
type RelationService struct {
	repo model.Repository
}

// NewRelationService 创建关联管理服务。
func NewRelationService(repo model.Repository) *RelationService {
	return &RelationService{repo: repo}
}

// SetUserRoles 将用户在某平台下的角色集合重置为 roleIDs。
//
// roleIDs 去重由调用方负责，重复 id 会触发唯一约束并以写入错误返回；
// 空集合合法，表示用户不再持有任何角色。
func (s *RelationService) SetUserRoles(ctx context.Context, userUUID string, roleIDs []string, platformID string) error {
	if _, err := s.repo.GetUserByUUID(ctx, userUUID, platformID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "用户不存在")
		}
		return err
	}
	return s.repo.ReplaceUserRoles(ctx, userUUID, roleIDs, platformID)
}

// SetRoleMenus 将角色在某平台下授予的菜单集合重置为 menuIDs。
func (s *RelationService) SetRoleMenus(ctx context.Context, roleUUID string, menuIDs []string, platformID string) error {
	if _, err := s.repo.GetRoleByUUID(ctx, roleUUID, platformID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "角色不存在")
		}
		return err
	}
	return s.repo.ReplaceRoleMenus(ctx, roleUUID, menuIDs, platformID)
}

// RoleMenuIDs 返回角色当前生效的菜单 id 集合。
func (s *RelationService) RoleMenuIDs(ctx context.Context, roleUUID, platformID string) ([]string, error) {
	menuIDs, err := s.repo.ListRoleMenuIDs(ctx, []string{roleUUID}, platformID)
	if err != nil {
		return nil, err
	}
	if menuIDs == nil {
		menuIDs = []string{}
	}
	return menuIDs, nil
}
