package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ReplaceUserRoles 重置用户在某平台下持有的角色集合。
//
// 删除与插入在同一事务中执行，避免中途失败留下空关系。重复的 roleID 会
// 触发唯一索引冲突并使整个事务回滚。
func (r *GormRepository) ReplaceUserRoles(ctx context.Context, userUUID string, roleIDs []string, platformID string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(userUUID) == "" {
		return fmt.Errorf("invalid user uuid")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND platform_id = ?", userUUID, platformID).
			Delete(&entity.DbUserRole{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		rows := make([]entity.DbUserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			rows = append(rows, entity.DbUserRole{
				UserID:     userUUID,
				RoleID:     roleID,
				PlatformID: platformID,
				Status:     entity.StatusActive,
			})
		}
		return tx.Create(&rows).Error
	})
}

// ReplaceRoleMenus 重置角色在某平台下授予的菜单集合。
func (r *GormRepository) ReplaceRoleMenus(ctx context.Context, roleUUID string, menuIDs []string, platformID string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(roleUUID) == "" {
		return fmt.Errorf("invalid role uuid")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ? AND platform_id = ?", roleUUID, platformID).
			Delete(&entity.DbRoleMenu{}).Error; err != nil {
			return err
		}
		if len(menuIDs) == 0 {
			return nil
		}
		rows := make([]entity.DbRoleMenu, 0, len(menuIDs))
		for _, menuID := range menuIDs {
			rows = append(rows, entity.DbRoleMenu{
				RoleID:     roleUUID,
				MenuID:     menuID,
				PlatformID: platformID,
				Status:     entity.StatusActive,
				CreatedBy:  "system",
				UpdatedBy:  "system",
			})
		}
		return tx.Create(&rows).Error
	})
}

// ListUserRoleIDs returns the role uuids a user holds, regardless of platform.
func (r *GormRepository) ListUserRoleIDs(ctx context.Context, userUUID string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(userUUID) == "" {
		return nil, fmt.Errorf("invalid user uuid")
	}
	var roleIDs []string
	err := r.db.WithContext(ctx).Model(&entity.DbUserRole{}).
		Where("user_id = ?", userUUID).
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}
	return roleIDs, nil
}

// ListRoleMenuIDs returns the menu uuids granted by any of the given roles
// within a platform, active grants only.
func (r *GormRepository) ListRoleMenuIDs(ctx context.Context, roleUUIDs []string, platformID string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(roleUUIDs) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Model(&entity.DbRoleMenu{}).
		Where("role_id IN ? AND status = ?", roleUUIDs, entity.StatusActive)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var menuIDs []string
	if err := query.Pluck("menu_id", &menuIDs).Error; err != nil {
		return nil, err
	}
	return menuIDs, nil
}

// CountRoleMenus counts the active menu grants of a role.
func (r *GormRepository) CountRoleMenus(ctx context.Context, roleUUID string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(roleUUID) == "" {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbRoleMenu{}).
		Where("role_id = ? AND status = ?", roleUUID, entity.StatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteUserRolesByUsers removes every user-role row of the given users.
func (r *GormRepository) DeleteUserRolesByUsers(ctx context.Context, userUUIDs []string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if len(userUUIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("user_id IN ?", userUUIDs).Delete(&entity.DbUserRole{}).Error
}

// DeleteUserRolesByRoles removes every user-role row referencing the given roles.
func (r *GormRepository) DeleteUserRolesByRoles(ctx context.Context, roleUUIDs []string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if len(roleUUIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("role_id IN ?", roleUUIDs).Delete(&entity.DbUserRole{}).Error
}

// DeleteRoleMenusByRoles removes every role-menu row of the given roles.
func (r *GormRepository) DeleteRoleMenusByRoles(ctx context.Context, roleUUIDs []string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if len(roleUUIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("role_id IN ?", roleUUIDs).Delete(&entity.DbRoleMenu{}).Error
}
