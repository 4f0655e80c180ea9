package entity

import "time"

// DbRole represents a persisted role. Role codes are unique within a
// platform.
type DbRole struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UUID        string    `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Name        string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Code        string    `gorm:"column:code;type:varchar(64);not null;uniqueIndex:uniq_role_code_platform" json:"code"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	Status      string    `gorm:"column:status;type:varchar(16);not null;default:active;index" json:"status"`
	PlatformID  string    `gorm:"column:platform_id;type:varchar(64);not null;index;uniqueIndex:uniq_role_code_platform" json:"platformId"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);default:system" json:"createdBy"`
	UpdatedBy   string    `gorm:"column:updated_by;type:varchar(64);default:system" json:"updatedBy"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "admin_roles"
}

// RoleBrief 嵌入用户视图中的角色摘要。
type RoleBrief struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// RoleView 角色视图，附带关联菜单数量。
type RoleView struct {
	DbRole
	MenuCount int64 `json:"menuCount"`
}

// RoleDetail 角色详情，附带关联的菜单ID集合。
type RoleDetail struct {
	DbRole
	MenuIDs []string `json:"menuIds"`
}

// RoleQuery supports listing roles with pagination and filters.
type RoleQuery struct {
	BaseParams
	Name       string `json:"name" form:"name"`
	Code       string `json:"code" form:"code"`
	Status     string `json:"status" form:"status"`
	PlatformID string `json:"platformId" form:"platformId"`
}

// RoleCreateRequest is the payload for creating a role. MenuIDs, when
// present, replaces the role's menu grants as a follow-up write.
type RoleCreateRequest struct {
	Name        string    `json:"name" binding:"required"`
	Code        string    `json:"code" binding:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	PlatformID  string    `json:"platformId"`
	MenuIDs     *[]string `json:"menuIds,omitempty"`
}

// RoleUpdateRequest is the payload for updating a role.
type RoleUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Code        *string   `json:"code,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	MenuIDs     *[]string `json:"menuIds,omitempty"`
}

// RoleMenusUpdateRequest 重置角色菜单集合的载荷。
type RoleMenusUpdateRequest struct {
	MenuIDs []string `json:"menuIds"`
}

// RoleListResult is the paginated role listing.
type RoleListResult struct {
	List     []RoleView `json:"list"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}
