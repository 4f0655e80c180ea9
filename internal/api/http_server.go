package api

import (
	"adminbase/internal/auth"
	"adminbase/internal/config"
	"adminbase/internal/entity"
	"adminbase/internal/model"
	"adminbase/internal/service"
	"adminbase/internal/storage"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	userService *service.UserService
	roleService *service.RoleService
	menuService *service.MenuService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	relations := service.NewRelationService(repo)
	perms := service.NewPermissionService(repo)

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		userService:       service.NewUserService(repo, perms, relations),
		roleService:       service.NewRoleService(repo, relations),
		menuService:       service.NewMenuService(repo),
	}, nil
}

// RegisterRoutes 注册全部业务路由。登录、health、ping 之外的路径都要求
// Bearer 认证。
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	apiGroup.POST("/user/login", h.Login)

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())

	protected.GET("/user/info", h.UserInfo)

	protected.GET("/users", h.ListUsers)
	protected.POST("/users", h.CreateUser)
	protected.PUT("/users/:uuid", h.UpdateUser)
	protected.DELETE("/users/:uuid", h.DeleteUser)
	protected.POST("/users/batch-delete", h.BatchDeleteUsers)
	protected.PUT("/users/:uuid/roles", h.UpdateUserRoles)

	protected.GET("/roles", h.ListRoles)
	protected.GET("/roles/:uuid", h.GetRole)
	protected.POST("/roles", h.CreateRole)
	protected.PUT("/roles/:uuid", h.UpdateRole)
	protected.DELETE("/roles/:uuid", h.DeleteRole)
	protected.POST("/roles/batch-delete", h.BatchDeleteRoles)
	protected.GET("/roles/:uuid/menus", h.GetRoleMenus)
	protected.PUT("/roles/:uuid/menus", h.UpdateRoleMenus)

	protected.GET("/menus", h.ListMenus)
	protected.GET("/menus/tree", h.MenuTree)
	protected.GET("/menus/:uuid", h.GetMenu)
	protected.POST("/menus", h.CreateMenu)
	protected.PUT("/menus/:uuid", h.UpdateMenu)
	protected.DELETE("/menus/:uuid", h.DeleteMenu)
	protected.POST("/menus/batch-delete", h.BatchDeleteMenus)

	protected.POST("/upload/avatar", h.UploadAvatar)
}

// platformFromQuery 读取查询参数中的平台标识，缺省为 default。
func platformFromQuery(c *gin.Context) string {
	platformID := strings.TrimSpace(c.Query("platformId"))
	if platformID == "" {
		return entity.DefaultPlatformID
	}
	return platformID
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
