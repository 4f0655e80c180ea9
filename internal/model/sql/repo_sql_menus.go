package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateMenu persists a new menu record.
func (r *GormRepository) CreateMenu(ctx context.Context, menu *entity.DbMenu) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if menu == nil {
		return fmt.Errorf("menu is nil")
	}
	return r.db.WithContext(ctx).Create(menu).Error
}

// UpdateMenu updates an existing menu entry by uuid.
func (r *GormRepository) UpdateMenu(ctx context.Context, uuid string, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return fmt.Errorf("invalid menu uuid")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbMenu{}).Where("uuid = ?", uuid).Updates(updates).Error
}

// GetMenuByUUID loads a menu by uuid, scoped by platform when provided.
func (r *GormRepository) GetMenuByUUID(ctx context.Context, uuid, platformID string) (*entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return nil, fmt.Errorf("invalid menu uuid")
	}
	query := r.db.WithContext(ctx).Where("uuid = ?", uuid)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var menu entity.DbMenu
	if err := query.First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetMenuByName loads a menu by display name within a platform.
func (r *GormRepository) GetMenuByName(ctx context.Context, name, platformID string) (*entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("menu name is empty")
	}
	query := r.db.WithContext(ctx).Where("name = ?", trimmed)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var menu entity.DbMenu
	if err := query.First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListMenus returns paginated menus matching the query filters, ordered by
// sort ascending then newest first.
func (r *GormRepository) ListMenus(ctx context.Context, params *entity.MenuQuery) ([]entity.DbMenu, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbMenu{})
	if params != nil {
		if name := strings.TrimSpace(params.Name); name != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if menuType := strings.TrimSpace(params.Type); menuType != "" {
			query = query.Where("type = ?", menuType)
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

	var menus []entity.DbMenu
	if err := query.Order("sort ASC, created_at DESC").Offset(offset).Limit(pageSize).Find(&menus).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return menus, meta, nil
}

// ListActiveMenus returns all active menus of a platform sorted for tree
// construction.
func (r *GormRepository) ListActiveMenus(ctx context.Context, platformID string) ([]entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Where("status = ?", entity.StatusActive)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var menus []entity.DbMenu
	if err := query.Order("sort ASC, created_at DESC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// FindActiveMenusByUUIDs loads the active menus among the given uuids sorted
// for tree construction.
func (r *GormRepository) FindActiveMenusByUUIDs(ctx context.Context, uuids []string, platformID string) ([]entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(uuids) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).
		Where("uuid IN ? AND status = ?", uuids, entity.StatusActive)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var menus []entity.DbMenu
	if err := query.Order("sort ASC, created_at DESC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// DeleteMenus removes menus by uuid and returns the affected row count.
func (r *GormRepository) DeleteMenus(ctx context.Context, uuids []string, platformID string) (int64, error) {
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
	result := query.Delete(&entity.DbMenu{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountMenuChildren counts menus whose parent_id references the given uuid.
func (r *GormRepository) CountMenuChildren(ctx context.Context, parentUUID string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(parentUUID) == "" {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbMenu{}).
		Where("parent_id = ?", parentUUID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
