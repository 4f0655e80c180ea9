package entity

import "time"

const (
	// MenuTypeMenu 导航菜单节点。
	MenuTypeMenu = "menu"
	// MenuTypeButton 按钮级权限节点。
	MenuTypeButton = "button"
)

// DbMenu represents a persisted menu node. ParentID is a weak reference to
// another menu's uuid; it does not own the child.
type DbMenu struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UUID       string    `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Name       string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Path       string    `gorm:"column:path;type:varchar(255)" json:"path,omitempty"`
	Component  string    `gorm:"column:component;type:varchar(255)" json:"component,omitempty"`
	Icon       string    `gorm:"column:icon;type:varchar(64)" json:"icon,omitempty"`
	ParentID   string    `gorm:"column:parent_id;type:varchar(36);index" json:"parentId,omitempty"`
	Type       string    `gorm:"column:type;type:varchar(16);not null;default:menu" json:"type"`
	Permission string    `gorm:"column:permission;type:varchar(128);index" json:"permission,omitempty"`
	Sort       int       `gorm:"column:sort;not null;default:0" json:"sort"`
	Status     string    `gorm:"column:status;type:varchar(16);not null;default:active;index" json:"status"`
	PlatformID string    `gorm:"column:platform_id;type:varchar(64);not null;index" json:"platformId"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);default:system" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64);default:system" json:"updatedBy"`
}

// TableName overrides default pluralised name.
func (DbMenu) TableName() string {
	return "admin_menus"
}

// MenuTreeNode 菜单树节点：children 由父节点持有，不存在环。
type MenuTreeNode struct {
	UUID       string          `json:"uuid"`
	Name       string          `json:"name"`
	Path       string          `json:"path,omitempty"`
	Component  string          `json:"component,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	Type       string          `json:"type"`
	Permission string          `json:"permission,omitempty"`
	Sort       int             `json:"sort"`
	Children   []*MenuTreeNode `json:"children"`
}

// MenuQuery supports listing menus with pagination and filters.
type MenuQuery struct {
	BaseParams
	Name       string `json:"name" form:"name"`
	Type       string `json:"type" form:"type"`
	Status     string `json:"status" form:"status"`
	PlatformID string `json:"platformId" form:"platformId"`
}

// MenuCreateRequest is the payload for creating a menu.
type MenuCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	Path       string `json:"path"`
	Component  string `json:"component"`
	Icon       string `json:"icon"`
	ParentID   string `json:"parentId"`
	Type       string `json:"type"`
	Permission string `json:"permission"`
	Sort       int    `json:"sort"`
	Status     string `json:"status"`
	PlatformID string `json:"platformId"`
}

// MenuUpdateRequest is the payload for updating a menu.
type MenuUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Path       *string `json:"path,omitempty"`
	Component  *string `json:"component,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	ParentID   *string `json:"parentId,omitempty"`
	Type       *string `json:"type,omitempty"`
	Permission *string `json:"permission,omitempty"`
	Sort       *int    `json:"sort,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// MenuListResult is the paginated menu listing.
type MenuListResult struct {
	List     []DbMenu `json:"list"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}
