package service

import (
	"adminbase/internal/entity"
	"context"
	"testing"
)

func TestResolvePermissionsZeroRoles(t *testing.T) {
	repo := newTestRepo(t)
	perms := NewPermissionService(repo)

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)

	permissions, err := perms.ResolvePermissions(context.Background(), user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析权限失败: %v", err)
	}
	if permissions == nil {
		t.Fatal("无角色用户应得到空切片而不是 nil")
	}
	if len(permissions) != 0 {
		t.Errorf("期望空权限集，实际 %v", permissions)
	}
}

func TestResolvePermissionsUnionAndDedup(t *testing.T) {
	repo := newTestRepo(t)
	relations := NewRelationService(repo)
	perms := NewPermissionService(repo)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)
	roleA := mustCreateRole(t, repo, "admin", entity.StatusActive, entity.DefaultPlatformID)
	roleB := mustCreateRole(t, repo, "editor", entity.StatusActive, entity.DefaultPlatformID)

	dashboard := mustCreateMenu(t, repo, "dashboard", "", "dashboard:read", entity.StatusActive, entity.DefaultPlatformID, 0)
	users := mustCreateMenu(t, repo, "users", "", "user:manage", entity.StatusActive, entity.DefaultPlatformID, 1)
	noPerm := mustCreateMenu(t, repo, "blank", "", "", entity.StatusActive, entity.DefaultPlatformID, 2)

	// 两个角色都授予 dashboard，权限集合仍只出现一次
	if err := relations.SetRoleMenus(ctx, roleA.UUID, []string{dashboard.UUID, users.UUID, noPerm.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("授权角色A失败: %v", err)
	}
	if err := relations.SetRoleMenus(ctx, roleB.UUID, []string{dashboard.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("授权角色B失败: %v", err)
	}
	if err := relations.SetUserRoles(ctx, user.UUID, []string{roleA.UUID, roleB.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置用户角色失败: %v", err)
	}

	permissions, err := perms.ResolvePermissions(ctx, user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析权限失败: %v", err)
	}

	seen := make(map[string]int)
	for _, p := range permissions {
		seen[p]++
	}
	if seen["dashboard:read"] != 1 {
		t.Errorf("dashboard:read 期望出现 1 次，实际 %d 次", seen["dashboard:read"])
	}
	if seen["user:manage"] != 1 {
		t.Errorf("user:manage 期望出现 1 次，实际 %d 次", seen["user:manage"])
	}
	if len(permissions) != 2 {
		t.Errorf("期望 2 个权限，实际 %v", permissions)
	}
}

func TestResolvePermissionsSkipsDisabledMenus(t *testing.T) {
	repo := newTestRepo(t)
	relations := NewRelationService(repo)
	perms := NewPermissionService(repo)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)
	role := mustCreateRole(t, repo, "admin", entity.StatusActive, entity.DefaultPlatformID)

	active := mustCreateMenu(t, repo, "dashboard", "", "dashboard:read", entity.StatusActive, entity.DefaultPlatformID, 0)
	disabled := mustCreateMenu(t, repo, "system", "", "system:read", entity.StatusDisabled, entity.DefaultPlatformID, 1)

	if err := relations.SetRoleMenus(ctx, role.UUID, []string{active.UUID, disabled.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("授权菜单失败: %v", err)
	}
	if err := relations.SetUserRoles(ctx, user.UUID, []string{role.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置用户角色失败: %v", err)
	}

	permissions, err := perms.ResolvePermissions(ctx, user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析权限失败: %v", err)
	}
	if len(permissions) != 1 || permissions[0] != "dashboard:read" {
		t.Errorf("停用菜单的权限不应出现，实际 %v", permissions)
	}
}

func TestResolveUserMenusBuildsTree(t *testing.T) {
	repo := newTestRepo(t)
	relations := NewRelationService(repo)
	perms := NewPermissionService(repo)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)
	role := mustCreateRole(t, repo, "admin", entity.StatusActive, entity.DefaultPlatformID)

	parent := mustCreateMenu(t, repo, "system", "", "system:read", entity.StatusActive, entity.DefaultPlatformID, 0)
	child := mustCreateMenu(t, repo, "users", parent.UUID, "user:manage", entity.StatusActive, entity.DefaultPlatformID, 1)

	if err := relations.SetRoleMenus(ctx, role.UUID, []string{parent.UUID, child.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("授权菜单失败: %v", err)
	}
	if err := relations.SetUserRoles(ctx, user.UUID, []string{role.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置用户角色失败: %v", err)
	}

	menus, err := perms.ResolveUserMenus(ctx, user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析菜单树失败: %v", err)
	}
	if len(menus) != 1 {
		t.Fatalf("期望 1 个根节点，实际 %d 个", len(menus))
	}
	if menus[0].UUID != parent.UUID {
		t.Errorf("根节点期望 %q，实际 %q", parent.UUID, menus[0].UUID)
	}
	if len(menus[0].Children) != 1 || menus[0].Children[0].UUID != child.UUID {
		t.Errorf("期望子节点 %q 挂在根下，实际 %+v", child.UUID, menus[0].Children)
	}
}

func TestResolveUserMenusZeroRoles(t *testing.T) {
	repo := newTestRepo(t)
	perms := NewPermissionService(repo)

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)

	menus, err := perms.ResolveUserMenus(context.Background(), user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析菜单树失败: %v", err)
	}
	if menus == nil || len(menus) != 0 {
		t.Errorf("无角色用户应得到空森林，实际 %v", menus)
	}
}

func TestActiveRolesFiltersDisabled(t *testing.T) {
	repo := newTestRepo(t)
	relations := NewRelationService(repo)
	perms := NewPermissionService(repo)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "alice", "secret123", entity.StatusActive, entity.DefaultPlatformID)
	active := mustCreateRole(t, repo, "admin", entity.StatusActive, entity.DefaultPlatformID)
	disabled := mustCreateRole(t, repo, "legacy", entity.StatusDisabled, entity.DefaultPlatformID)

	if err := relations.SetUserRoles(ctx, user.UUID, []string{active.UUID, disabled.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置用户角色失败: %v", err)
	}

	roles, err := perms.ActiveRoles(ctx, user.UUID)
	if err != nil {
		t.Fatalf("查询启用角色失败: %v", err)
	}
	if len(roles) != 1 || roles[0].Code != "admin" {
		t.Errorf("停用角色不应出现，实际 %+v", roles)
	}
}
