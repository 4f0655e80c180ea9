package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser updates an existing user entry by uuid.
func (r *GormRepository) UpdateUser(ctx context.Context, uuid string, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return fmt.Errorf("invalid user uuid")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("uuid = ?", uuid).Updates(updates).Error
}

// GetUserByUUID loads a user by uuid, scoped by platform when provided.
func (r *GormRepository) GetUserByUUID(ctx context.Context, uuid, platformID string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(uuid) == "" {
		return nil, fmt.Errorf("invalid user uuid")
	}
	query := r.db.WithContext(ctx).Where("uuid = ?", uuid)
	if strings.TrimSpace(platformID) != "" {
		query = query.Where("platform_id = ?", platformID)
	}
	var user entity.DbUser
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByLoginName loads a user by login name within a platform, any status.
func (r *GormRepository) GetUserByLoginName(ctx context.Context, loginName, platformID string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(loginName)
	if trimmed == "" {
		return nil, fmt.Errorf("login name is empty")
	}
	var user entity.DbUser
	err := r.db.WithContext(ctx).
		Where("login_name = ? AND platform_id = ?", trimmed, platformID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns paginated users matching the query filters.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	if params != nil {
		if name := strings.TrimSpace(params.Name); name != "" {
			query = query.Where("LOWER(nickname) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if loginName := strings.TrimSpace(params.LoginName); loginName != "" {
			query = query.Where("LOWER(login_name) LIKE ?", "%"+strings.ToLower(loginName)+"%")
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

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return users, meta, nil
}

// DeleteUsers removes users by uuid and returns the affected row count.
func (r *GormRepository) DeleteUsers(ctx context.Context, uuids []string, platformID string) (int64, error) {
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
	result := query.Delete(&entity.DbUser{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UserLoginNameExists reports whether a login name is taken within a platform,
// optionally excluding one uuid.
func (r *GormRepository) UserLoginNameExists(ctx context.Context, loginName, excludeUUID, platformID string) (bool, error) {
	return r.userFieldExists(ctx, "login_name", loginName, excludeUUID, platformID)
}

// UserEmailExists reports whether an email is taken within a platform.
func (r *GormRepository) UserEmailExists(ctx context.Context, email, excludeUUID, platformID string) (bool, error) {
	return r.userFieldExists(ctx, "email", email, excludeUUID, platformID)
}

// UserPhoneExists reports whether a phone number is taken within a platform.
func (r *GormRepository) UserPhoneExists(ctx context.Context, phone, excludeUUID, platformID string) (bool, error) {
	return r.userFieldExists(ctx, "phone", phone, excludeUUID, platformID)
}

func (r *GormRepository) userFieldExists(ctx context.Context, column, value, excludeUUID, platformID string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where(column+" = ?", trimmed)
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
