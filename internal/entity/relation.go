package entity

import "time"

// DbUserRole 用户-角色关联：存在即表示“用户持有角色”。
type DbUserRole struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);not null;index;uniqueIndex:uniq_user_role" json:"userId"`
	RoleID     string    `gorm:"column:role_id;type:varchar(36);not null;index;uniqueIndex:uniq_user_role" json:"roleId"`
	PlatformID string    `gorm:"column:platform_id;type:varchar(64);index" json:"platformId"`
	Status     string    `gorm:"column:status;type:varchar(16);default:active" json:"status"`
}

// TableName overrides default pluralised name.
func (DbUserRole) TableName() string {
	return "admin_user_roles"
}

// DbRoleMenu 角色-菜单关联：存在即表示“角色授予菜单”。
type DbRoleMenu struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	RoleID     string    `gorm:"column:role_id;type:varchar(36);not null;index;uniqueIndex:uniq_role_menu" json:"roleId"`
	MenuID     string    `gorm:"column:menu_id;type:varchar(36);not null;index;uniqueIndex:uniq_role_menu" json:"menuId"`
	PlatformID string    `gorm:"column:platform_id;type:varchar(64);index" json:"platformId"`
	Status     string    `gorm:"column:status;type:varchar(16);default:active" json:"status"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);default:system" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64);default:system" json:"updatedBy"`
}

// TableName overrides default pluralised name.
func (DbRoleMenu) TableName() string {
	return "admin_role_menus"
}
