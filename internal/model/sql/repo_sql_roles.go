package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateRole persists a new role record.
func (r *GormRepository) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil {
		return fmt.Errorf("role is nil")
	}
	return r.db.WithContext(ctx).Create(role).Error
}

// UpdateRole updates an existing role entry by uuid.
func (r *GormRepository) UpdateRole(ctx context.Context, uuid string, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return fmt.Errorf("invalid role uuid")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("uuid = ?", uuid).Updates(updates).Error
}

// GetRoleByUUID loads a role by uuid, scoped by platform when provided.
func (r *GormRepository) GetRoleByUUID(ctx context.Context, uuid, platformID string) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return nil, fmt.Errorf("invalid role uuid")
	}
	query := r.db.WithContext(ctx).Where("uuid = ?", uuid)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var role entity.DbRole
	if err := query.First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByCode loads a role by its code within a platform.
func (r *GormRepository) GetRoleByCode(ctx context.Context, code, platformID string) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, fmt.Errorf("role code is empty")
	}
	var role entity.DbRole
	err := r.db.WithContext(ctx).
		Where("code = ? AND platform_id = ?", trimmed, platformID).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns paginated roles matching the query filters.
func (r *GormRepository) ListRoles(ctx context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbRole{})
	if params != nil {
		if name := strings.TrimSpace(params.Name); name != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if code := strings.TrimSpace(params.Code); code != "" {
			query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(code)+"%")
		}
		if status := strings.TrimSpace(params.Status); status != "" {
			query = query.Where("status = ?", status)
		}
		if platformID := strings.TrimSpace(params.PlatformID); platformID != "" {
			query = query.Where("platform_id = ?", platformID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 10
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.PageSize > 0 {
			pageSize = params.PageSize
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var roles []entity.DbRole
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&roles).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return roles, meta, nil
}

// DeleteRoles removes roles by uuid and returns the affected row count.
func (r *GormRepository) DeleteRoles(ctx context.Context, uuids []string, platformID string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if len(uuids) == 0 {
		return 0, nil
	}
	query := r.db.WithContext(ctx).Where("uuid IN ?", uuids)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	result := query.Delete(&entity.DbRole{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindActiveRolesByUUIDs loads the active roles among the given uuids.
func (r *GormRepository) FindActiveRolesByUUIDs(ctx context.Context, uuids []string) ([]entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(uuids) == 0 {
		return nil, nil
	}
	var roles []entity.DbRole
	err := r.db.WithContext(ctx).
		Where("uuid IN ? AND status = ?", uuids, entity.StatusActive).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// RoleCodeExists reports whether a role code is taken within a platform,
// optionally excluding one uuid.
func (r *GormRepository) RoleCodeExists(ctx context.Context, code, excludeUUID, platformID string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("code = ?", trimmed)
	if strings.TrimSpace(excludeUUID) != "" {
		query = query.Where("uuid <> ?", excludeUUID)
	}
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
