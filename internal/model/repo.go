package model

import (
	"adminbase/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, uuid string, updates map[string]interface{}) error
	GetUserByUUID(ctx context.Context, uuid, platformID string) (*entity.DbUser, error)
	GetUserByLoginName(ctx context.Context, loginName, platformID string) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUsers(ctx context.Context, uuids []string, platformID string) (int64, error)
	UserLoginNameExists(ctx context.Context, loginName, excludeUUID, platformID string) (bool, error)
	UserEmailExists(ctx context.Context, email, excludeUUID, platformID string) (bool, error)
	UserPhoneExists(ctx context.Context, phone, excludeUUID, platformID string) (bool, error)

	// 角色管理
	CreateRole(ctx context.Context, role *entity.DbRole) error
	UpdateRole(ctx context.Context, uuid string, updates map[string]interface{}) error
	GetRoleByUUID(ctx context.Context, uuid, platformID string) (*entity.DbRole, error)
	GetRoleByCode(ctx context.Context, code, platformID string) (*entity.DbRole, error)
	ListRoles(ctx context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error)
	DeleteRoles(ctx context.Context, uuids []string, platformID string) (int64, error)
	FindActiveRolesByUUIDs(ctx context.Context, uuids []string) ([]entity.DbRole, error)
	RoleCodeExists(ctx context.Context, code, excludeUUID, platformID string) (bool, error)

	// 菜单管理
	CreateMenu(ctx context.Context, menu *entity.DbMenu) error
	UpdateMenu(ctx context.Context, uuid string, updates map[string]interface{}) error
	GetMenuByUUID(ctx context.Context, uuid, platformID string) (*entity.DbMenu, error)
	GetMenuByName(ctx context.Context, name, platformID string) (*entity.DbMenu, error)
	ListMenus(ctx context.Context, params *entity.MenuQuery) ([]entity.DbMenu, *entity.Meta, error)
	ListActiveMenus(ctx context.Context, platformID string) ([]entity.DbMenu, error)
	FindActiveMenusByUUIDs(ctx context.Context, uuids []string, platformID string) ([]entity.DbMenu, error)
	DeleteMenus(ctx context.Context, uuids []string, platformID string) (int64, error)
	CountMenuChildren(ctx context.Context, parentUUID string) (int64, error)

	// 关联关系（user↔role、role↔menu）
	ReplaceUserRoles(ctx context.Context, userUUID string, roleIDs []string, platformID string) error
	ReplaceRoleMenus(ctx context.Context, roleUUID string, menuIDs []string, platformID string) error
	ListUserRoleIDs(ctx context.Context, userUUID string) ([]string, error)
	ListRoleMenuIDs(ctx context.Context, roleUUIDs []string, platformID string) ([]string, error)
	CountRoleMenus(ctx context.Context, roleUUID string) (int64, error)
	DeleteUserRolesByUsers(ctx context.Context, userUUIDs []string) error
	DeleteUserRolesByRoles(ctx context.Context, roleUUIDs []string) error
	DeleteRoleMenusByRoles(ctx context.Context, roleUUIDs []string) error
}
