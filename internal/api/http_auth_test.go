package api

import (
	"adminbase/internal/auth"
	"adminbase/internal/entity"
	"adminbase/internal/model"
	modelsql "adminbase/internal/model/sql"
	"adminbase/internal/service"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type authAPITestEnv struct {
	router  *gin.Engine
	repo    model.Repository
	manager *auth.Manager
	perms   *service.PermissionService
	sqlDB   *sql.DB
}

// newAuthAPITestEnv 基于内存 SQLite 装配完整的认证相关路由。
func newAuthAPITestEnv(t *testing.T) *authAPITestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 内存库每个连接各自独立，限制为单连接保证所有操作命中同一个库
	sqlDB.SetMaxOpenConns(1)
	if err := model.MigrateSchema(db); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	repo := modelsql.NewGormRepository(db)

	manager, err := auth.NewManager("test-secret", "adminbase-test", time.Hour)
	if err != nil {
		t.Fatalf("创建 JWT 管理器失败: %v", err)
	}

	relations := service.NewRelationService(repo)
	perms := service.NewPermissionService(repo)
	h := &HTTPHandler{
		repo:        repo,
		authManager: manager,
		userService: service.NewUserService(repo, perms, relations),
		roleService: service.NewRoleService(repo, relations),
		menuService: service.NewMenuService(repo),
	}

	r := gin.New()
	h.RegisterRoutes(r)

	return &authAPITestEnv{router: r, repo: repo, manager: manager, perms: perms, sqlDB: sqlDB}
}

// seedGrantedUser 建立 用户→角色→父子菜单 的完整授权链。
func (env *authAPITestEnv) seedGrantedUser(t *testing.T, loginName, password string) *entity.DbUser {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &entity.DbUser{
		UUID:         uuid.NewString(),
		LoginName:    loginName,
		Nickname:     loginName,
		Email:        loginName + "@example.com",
		Status:       entity.StatusActive,
		PlatformID:   entity.DefaultPlatformID,
		PasswordHash: hash,
	}
	if err := env.repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	role := &entity.DbRole{
		UUID:       uuid.NewString(),
		Name:       "管理员",
		Code:       "admin",
		Status:     entity.StatusActive,
		PlatformID: entity.DefaultPlatformID,
	}
	if err := env.repo.CreateRole(ctx, role); err != nil {
		t.Fatalf("创建角色失败: %v", err)
	}

	parent := &entity.DbMenu{
		UUID: uuid.NewString(), Name: "系统管理", Path: "/system",
		Type: entity.MenuTypeMenu, Permission: "system:read", Sort: 1,
		Status: entity.StatusActive, PlatformID: entity.DefaultPlatformID,
	}
	child := &entity.DbMenu{
		UUID: uuid.NewString(), Name: "用户管理", Path: "/system/users", ParentID: parent.UUID,
		Type: entity.MenuTypeMenu, Permission: "user:manage", Sort: 2,
		Status: entity.StatusActive, PlatformID: entity.DefaultPlatformID,
	}
	for _, menu := range []*entity.DbMenu{parent, child} {
		if err := env.repo.CreateMenu(ctx, menu); err != nil {
			t.Fatalf("创建菜单 %s 失败: %v", menu.Name, err)
		}
	}

	relations := service.NewRelationService(env.repo)
	if err := relations.SetUserRoles(ctx, user.UUID, []string{role.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置用户角色失败: %v", err)
	}
	if err := relations.SetRoleMenus(ctx, role.UUID, []string{parent.UUID, child.UUID}, entity.DefaultPlatformID); err != nil {
		t.Fatalf("设置角色菜单失败: %v", err)
	}
	return user
}

// sameMenuTree 逐节点比较两棵菜单树的 uuid 与层级结构。
func sameMenuTree(a, b []*entity.MenuTreeNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].UUID != b[i].UUID {
			return false
		}
		if !sameMenuTree(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}

func TestLoginEndpoint(t *testing.T) {
	env := newAuthAPITestEnv(t)
	user := env.seedGrantedUser(t, "alice", "secret123")

	body, _ := json.Marshal(entity.LoginRequest{LoginName: "alice", Password: "secret123"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("HTTP 状态期望 200，实际 %d，响应 %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != CodeSuccess {
		t.Fatalf("业务码期望 %d，实际 %d，消息 %q", CodeSuccess, resp.Code, resp.Message)
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("序列化 data 失败: %v", err)
	}
	var result entity.LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("解析登录响应失败: %v", err)
	}

	if result.Token == "" {
		t.Fatal("登录响应应携带令牌")
	}
	claims, err := env.manager.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("返回的令牌无法解析: %v", err)
	}
	if claims.UUID != user.UUID {
		t.Errorf("令牌声明 uuid 期望 %q，实际 %q", user.UUID, claims.UUID)
	}

	// 登录返回的菜单树应与权限解析直接计算的结果一致
	expected, err := env.perms.ResolveUserMenus(context.Background(), user.UUID, entity.DefaultPlatformID)
	if err != nil {
		t.Fatalf("解析用户菜单失败: %v", err)
	}
	if len(expected) == 0 {
		t.Fatal("预期菜单树不应为空")
	}
	if !sameMenuTree(result.UserInfo.Menus, expected) {
		t.Errorf("登录返回的菜单树与权限解析结果不一致：%v vs %v", result.UserInfo.Menus, expected)
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	env := newAuthAPITestEnv(t)
	env.seedGrantedUser(t, "alice", "secret123")

	body, _ := json.Marshal(entity.LoginRequest{LoginName: "alice", Password: "wrong"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	// 业务失败保持 HTTP 200
	if w.Code != http.StatusOK {
		t.Fatalf("HTTP 状态期望 200，实际 %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != CodeFail {
		t.Errorf("业务码期望 %d，实际 %d", CodeFail, resp.Code)
	}
	if resp.Message != "密码错误" {
		t.Errorf("消息期望 %q，实际 %q", "密码错误", resp.Message)
	}
}

func TestUserInfoEndpointStatusCodes(t *testing.T) {
	env := newAuthAPITestEnv(t)
	user := env.seedGrantedUser(t, "alice", "secret123")

	getInfo := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/user/info", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		env.router.ServeHTTP(w, req)
		return w
	}

	token, _, err := env.manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	w := getInfo(token)
	if w.Code != http.StatusOK {
		t.Fatalf("正常查询期望 200，实际 %d，响应 %s", w.Code, w.Body.String())
	}
	if resp := decodeEnvelope(t, w); resp.Code != CodeSuccess {
		t.Errorf("正常查询业务码期望 %d，实际 %d", CodeSuccess, resp.Code)
	}

	// 令牌有效但对应用户已不存在，按未认证处理
	ghost := &entity.DbUser{UUID: uuid.NewString(), LoginName: "ghost", PlatformID: entity.DefaultPlatformID}
	ghostToken, _, err := env.manager.GenerateToken(ghost)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	w = getInfo(ghostToken)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("用户不存在期望 401，实际 %d，响应 %s", w.Code, w.Body.String())
	}
	if resp := decodeEnvelope(t, w); resp.Message != "用户不存在" {
		t.Errorf("消息期望 %q，实际 %q", "用户不存在", resp.Message)
	}

	// 存储层不可用属于服务端异常，返回 500
	if err := env.sqlDB.Close(); err != nil {
		t.Fatalf("关闭数据库失败: %v", err)
	}
	w = getInfo(token)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("存储层异常期望 500，实际 %d，响应 %s", w.Code, w.Body.String())
	}
	if resp := decodeEnvelope(t, w); resp.Code != CodeFail {
		t.Errorf("失败信封业务码期望 %d，实际 %d", CodeFail, resp.Code)
	}
}
