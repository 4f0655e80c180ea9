package entity

import "time"

const (
	// StatusActive 实体处于启用状态。
	StatusActive = "active"
	// StatusDisabled 实体已停用。
	StatusDisabled = "disabled"
	// StatusPending 用户待激活。
	StatusPending = "pending"
	// StatusBanned 用户已封禁。
	StatusBanned = "banned"
)

// DefaultPlatformID 未指定平台时使用的租户标识。
const DefaultPlatformID = "default"

// DbUser represents a persisted admin account. Uniqueness of login name,
// email and phone is scoped by platform.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UUID         string    `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`
	LoginName    string    `gorm:"column:login_name;type:varchar(64);not null;uniqueIndex:uniq_user_login_platform" json:"loginName"`
	Nickname     string    `gorm:"column:nickname;type:varchar(64);not null" json:"nickname"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uniq_user_email_platform" json:"email"`
	Phone        *string   `gorm:"column:phone;type:varchar(32);uniqueIndex:uniq_user_phone_platform" json:"phone,omitempty"`
	Avatar       string    `gorm:"column:avatar;type:varchar(255)" json:"avatar,omitempty"`
	PlatformID   string    `gorm:"column:platform_id;type:varchar(64);not null;index;uniqueIndex:uniq_user_login_platform;uniqueIndex:uniq_user_email_platform;uniqueIndex:uniq_user_phone_platform" json:"platformId"`
	Gender       string    `gorm:"column:gender;type:varchar(16);default:other" json:"gender,omitempty"`
	Birthday     string    `gorm:"column:birthday;type:varchar(32)" json:"birthday,omitempty"`
	Address      string    `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	Remark       string    `gorm:"column:remark;type:varchar(255)" json:"remark,omitempty"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;default:active;index" json:"status"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	LastLoginIP  string    `gorm:"column:last_login_ip;type:varchar(64)" json:"-"`
	CreatedBy    string    `gorm:"column:created_by;type:varchar(64);default:system" json:"createdBy"`
	UpdatedBy    string    `gorm:"column:updated_by;type:varchar(64);default:system" json:"updatedBy"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "admin_users"
}

// UserView 附带角色信息的用户视图。
type UserView struct {
	DbUser
	Roles []RoleBrief `json:"roles"`
}

// UserQuery supports listing users with pagination and filters.
type UserQuery struct {
	BaseParams
	Name       string `json:"name" form:"name"`
	LoginName  string `json:"loginName" form:"loginName"`
	Status     string `json:"status" form:"status"`
	PlatformID string `json:"platformId" form:"platformId"`
}

// UserCreateRequest is the payload for creating a user.
type UserCreateRequest struct {
	LoginName  string  `json:"loginName" binding:"required"`
	Nickname   string  `json:"nickname"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone"`
	Password   string  `json:"password" binding:"required,min=6"`
	Avatar     string  `json:"avatar"`
	Gender     string  `json:"gender"`
	Birthday   string  `json:"birthday"`
	Address    string  `json:"address"`
	Remark     string  `json:"remark"`
	Status     string  `json:"status"`
	PlatformID string  `json:"platformId"`
}

// UserUpdateRequest is the payload for updating a user. Absent fields are
// left untouched.
type UserUpdateRequest struct {
	LoginName *string `json:"loginName,omitempty"`
	Nickname  *string `json:"nickname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Password  *string `json:"password,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Birthday  *string `json:"birthday,omitempty"`
	Address   *string `json:"address,omitempty"`
	Remark    *string `json:"remark,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// UserRolesUpdateRequest 重置用户角色集合的载荷。
type UserRolesUpdateRequest struct {
	RoleIDs []string `json:"roleIds"`
}

// UserListResult is the paginated user listing.
type UserListResult struct {
	List     []UserView `json:"list"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// LoginRequest 登录载荷。
type LoginRequest struct {
	LoginName  string `json:"loginName" binding:"required"`
	Password   string `json:"password" binding:"required"`
	PlatformID string `json:"platformId"`
}

// UserInfo 登录及“当前用户”查询返回的复合视图。
type UserInfo struct {
	UUID        string          `json:"uuid"`
	Nickname    string          `json:"nickname"`
	LoginName   string          `json:"loginName"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone,omitempty"`
	Avatar      string          `json:"avatar,omitempty"`
	PlatformID  string          `json:"platformId"`
	Roles       []RoleBrief     `json:"roles"`
	Permissions []string        `json:"permissions"`
	Menus       []*MenuTreeNode `json:"menus"`
}

// LoginResult 登录响应。
type LoginResult struct {
	Token    string   `json:"token"`
	UserInfo UserInfo `json:"userInfo"`
}
