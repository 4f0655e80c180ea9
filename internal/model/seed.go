package model

import (
	"adminbase/internal/auth"
	"adminbase/internal/config"
	"adminbase/internal/entity"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleSeed struct {
	Name        string
	Code        string
	Description string
	MenuNames   []string
}

type menuSeed struct {
	Name       string
	Path       string
	Component  string
	Icon       string
	Type       string
	Sort       int
	Permission string
	ParentName string
}

type userSeed struct {
	Nickname  string
	LoginName string
	Email     string
	Password  string
	Phone     string
	Remark    string
	RoleCode  string
}

// SeedDefaultData 保证默认平台的初始角色、菜单与管理员账号存在。
// 幂等：已存在的数据不会被重复创建。
func SeedDefaultData(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}
	platformID := entity.DefaultPlatformID

	roleUUIDs, err := seedRoles(ctx, repo, platformID)
	if err != nil {
		return err
	}
	menuUUIDs, err := seedMenus(ctx, repo, platformID)
	if err != nil {
		return err
	}
	if err := seedRoleMenus(ctx, repo, roleUUIDs, menuUUIDs, platformID); err != nil {
		return err
	}
	return seedUsers(ctx, repo, cfg, roleUUIDs, platformID)
}

func defaultRoleSeeds() []roleSeed {
	return []roleSeed{
		{Name: "超级管理员", Code: "super_admin", Description: "系统超级管理员，拥有所有权限"},
		{Name: "系统管理员", Code: "admin", Description: "系统管理员，拥有大部分权限",
			MenuNames: []string{"仪表盘", "系统管理", "用户管理", "角色管理", "菜单管理"}},
		{Name: "普通用户", Code: "user", Description: "普通用户，只有基本权限",
			MenuNames: []string{"仪表盘"}},
	}
}

func defaultMenuSeeds() []menuSeed {
	return []menuSeed{
		{Name: "仪表盘", Path: "/dashboard", Component: "./pages/dashboard", Icon: "DashboardOutlined",
			Type: entity.MenuTypeMenu, Sort: 0, Permission: "dashboard:read"},
		{Name: "系统管理", Path: "/system", Icon: "SettingOutlined",
			Type: entity.MenuTypeMenu, Sort: 1, Permission: "system:read"},
		{Name: "用户管理", Path: "/system/users", Component: "./pages/system/users", Icon: "UserOutlined",
			Type: entity.MenuTypeMenu, Sort: 1, Permission: "user:manage", ParentName: "系统管理"},
		{Name: "角色管理", Path: "/system/roles", Component: "./pages/system/roles", Icon: "TeamOutlined",
			Type: entity.MenuTypeMenu, Sort: 2, Permission: "role:manage", ParentName: "系统管理"},
		{Name: "菜单管理", Path: "/system/menus", Component: "./pages/system/menus", Icon: "MenuOutlined",
			Type: entity.MenuTypeMenu, Sort: 3, Permission: "menu:manage", ParentName: "系统管理"},
	}
}

func seedRoles(ctx context.Context, repo Repository, platformID string) (map[string]string, error) {
	roleUUIDs := make(map[string]string)
	for _, seed := range defaultRoleSeeds() {
		existing, err := repo.GetRoleByCode(ctx, seed.Code, platformID)
		switch {
		case err == nil:
			roleUUIDs[seed.Code] = existing.UUID
		case errors.Is(err, gorm.ErrRecordNotFound):
			role := entity.DbRole{
				UUID:        uuid.NewString(),
				Name:        seed.Name,
				Code:        seed.Code,
				Description: seed.Description,
				Status:      entity.StatusActive,
				PlatformID:  platformID,
			}
			if err := repo.CreateRole(ctx, &role); err != nil {
				return nil, err
			}
			roleUUIDs[seed.Code] = role.UUID
		default:
			return nil, err
		}
	}
	return roleUUIDs, nil
}

func seedMenus(ctx context.Context, repo Repository, platformID string) (map[string]string, error) {
	menuUUIDs := make(map[string]string)
	seeds := defaultMenuSeeds()

	// 先建一级菜单，再建子菜单，父节点的 uuid 此时已可解析。
	for _, pass := range []bool{false, true} {
		for _, seed := range seeds {
			if (seed.ParentName != "") != pass {
				continue
			}
			parentUUID := menuUUIDs[seed.ParentName]
			if seed.ParentName != "" && parentUUID == "" {
				continue
			}

			existing, err := repo.GetMenuByName(ctx, seed.Name, platformID)
			switch {
			case err == nil:
				menuUUIDs[seed.Name] = existing.UUID
				if seed.ParentName != "" && existing.ParentID != parentUUID {
					if err := repo.UpdateMenu(ctx, existing.UUID, map[string]interface{}{"parent_id": parentUUID}); err != nil {
						return nil, err
					}
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				menu := entity.DbMenu{
					UUID:       uuid.NewString(),
					Name:       seed.Name,
					Path:       seed.Path,
					Component:  seed.Component,
					Icon:       seed.Icon,
					ParentID:   parentUUID,
					Type:       seed.Type,
					Permission: seed.Permission,
					Sort:       seed.Sort,
					Status:     entity.StatusActive,
					PlatformID: platformID,
				}
				if err := repo.CreateMenu(ctx, &menu); err != nil {
					return nil, err
				}
				menuUUIDs[seed.Name] = menu.UUID
			default:
				return nil, err
			}
		}
	}
	return menuUUIDs, nil
}

func seedRoleMenus(ctx context.Context, repo Repository, roleUUIDs, menuUUIDs map[string]string, platformID string) error {
	for _, seed := range defaultRoleSeeds() {
		roleUUID := roleUUIDs[seed.Code]
		if roleUUID == "" {
			continue
		}

		count, err := repo.CountRoleMenus(ctx, roleUUID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		var menuIDs []string
		if seed.Code == "super_admin" {
			// 超级管理员授予全部菜单
			for _, menuUUID := range menuUUIDs {
				menuIDs = append(menuIDs, menuUUID)
			}
		} else {
			for _, name := range seed.MenuNames {
				if menuUUID := menuUUIDs[name]; menuUUID != "" {
					menuIDs = append(menuIDs, menuUUID)
				}
			}
		}
		if len(menuIDs) == 0 {
			continue
		}
		if err := repo.ReplaceRoleMenus(ctx, roleUUID, menuIDs, platformID); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(ctx context.Context, repo Repository, cfg config.Config, roleUUIDs map[string]string, platformID string) error {
	adminLogin := strings.TrimSpace(cfg.SeedAdminLoginName)
	if adminLogin == "" {
		adminLogin = "admin"
	}
	adminEmail := strings.TrimSpace(cfg.SeedAdminEmail)
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	seeds := []userSeed{
		{Nickname: "超级管理员", LoginName: adminLogin, Email: adminEmail, Password: cfg.SeedAdminPassword,
			Remark: "系统超级管理员账号", RoleCode: "super_admin"},
	}

	for _, seed := range seeds {
		_, err := repo.GetUserByLoginName(ctx, seed.LoginName, platformID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			return err
		}

		user := entity.DbUser{
			UUID:         uuid.NewString(),
			LoginName:    seed.LoginName,
			Nickname:     seed.Nickname,
			Email:        seed.Email,
			Remark:       seed.Remark,
			Status:       entity.StatusActive,
			PlatformID:   platformID,
			PasswordHash: hash,
		}
		if seed.Phone != "" {
			phone := seed.Phone
			user.Phone = &phone
		}
		if err := repo.CreateUser(ctx, &user); err != nil {
			return err
		}

		if roleUUID := roleUUIDs[seed.RoleCode]; roleUUID != "" {
			if err := repo.ReplaceUserRoles(ctx, user.UUID, []string{roleUUID}, platformID); err != nil {
				return err
			}
		}
	}
	return nil
}
