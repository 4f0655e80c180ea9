package service

import (
	"adminbase/internal/auth"
	"adminbase/internal/entity"
	"adminbase/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService 用户 CRUD 编排：写入前做租户内唯一性校验，删除时级联清理
// 用户-角色关联。
type UserService struct {
	repo      model.Repository
	perms     *PermissionService
	relations *RelationService
}

// NewUserService 创建用户服务。
func NewUserService(repo model.Repository, perms *PermissionService, relations *RelationService) *UserService {
	return &UserService{repo: repo, perms: perms, relations: relations}
}

// Login 校验登录名与密码，更新最后登录时间，并装配身份、角色、权限与
// 菜单树的复合视图。令牌签发由调用方完成。
func (s *UserService) Login(ctx context.Context, loginName, password, platformID, clientIP string) (*entity.DbUser, *entity.UserInfo, error) {
	user, err := s.repo.GetUserByLoginName(ctx, loginName, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, newError(KindNotFound, "用户不存在或已被禁用")
		}
		return nil, nil, err
	}
	if user.Status != entity.StatusActive {
		return nil, nil, newError(KindDisabled, "用户不存在或已被禁用")
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, newError(KindBadCredentials, "密码错误")
	}

	now := time.Now()
	updates := map[string]interface{}{"last_login_at": now}
	if strings.TrimSpace(clientIP) != "" {
		updates["last_login_ip"] = clientIP
	}
	if err := s.repo.UpdateUser(ctx, user.UUID, updates); err != nil {
		return nil, nil, err
	}
	user.LastLoginAt = &now

	info, err := s.buildUserInfo(ctx, user, platformID)
	if err != nil {
		return nil, nil, err
	}
	return user, info, nil
}

// Info 装配“当前用户”复合视图：身份字段 + 角色 + 权限 + 菜单树。
func (s *UserService) Info(ctx context.Context, userUUID, platformID string) (*entity.UserInfo, error) {
	user, err := s.repo.GetUserByUUID(ctx, userUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "用户不存在")
		}
		return nil, err
	}
	return s.buildUserInfo(ctx, user, platformID)
}

func (s *UserService) buildUserInfo(ctx context.Context, user *entity.DbUser, platformID string) (*entity.UserInfo, error) {
	roles, err := s.perms.ActiveRoles(ctx, user.UUID)
	if err != nil {
		return nil, err
	}
	permissions, err := s.perms.ResolvePermissions(ctx, user.UUID, platformID)
	if err != nil {
		return nil, err
	}
	menus, err := s.perms.ResolveUserMenus(ctx, user.UUID, platformID)
	if err != nil {
		return nil, err
	}
	return &entity.UserInfo{
		UUID:        user.UUID,
		Nickname:    user.Nickname,
		LoginName:   user.LoginName,
		Email:       user.Email,
		Phone:       user.Phone,
		Avatar:      user.Avatar,
		PlatformID:  user.PlatformID,
		Roles:       roles,
		Permissions: permissions,
		Menus:       menus,
	}, nil
}

// List 分页查询用户，并为每条记录附带其启用角色。
func (s *UserService) List(ctx context.Context, query *entity.UserQuery) (*entity.UserListResult, error) {
	query.Normalize()
	users, meta, err := s.repo.ListUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]entity.UserView, 0, len(users))
	for i := range users {
		roles, err := s.perms.ActiveRoles(ctx, users[i].UUID)
		if err != nil {
			return nil, err
		}
		list = append(list, entity.UserView{DbUser: users[i], Roles: roles})
	}

	return &entity.UserListResult{
		List:     list,
		Total:    meta.Total,
		Page:     meta.Page,
		PageSize: meta.PageSize,
	}, nil
}

// Get 按 uuid 查询用户详情（附带角色）。
func (s *UserService) Get(ctx context.Context, userUUID, platformID string) (*entity.UserView, error) {
	user, err := s.repo.GetUserByUUID(ctx, userUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "用户不存在")
		}
		return nil, err
	}
	roles, err := s.perms.ActiveRoles(ctx, user.UUID)
	if err != nil {
		return nil, err
	}
	return &entity.UserView{DbUser: *user, Roles: roles}, nil
}

// Create 新建用户。登录名、邮箱、手机号（如提供）在租户内必须唯一，
// 冲突时返回 DuplicateValue 且不产生任何写入。
func (s *UserService) Create(ctx context.Context, req *entity.UserCreateRequest) (*entity.UserView, error) {
	platformID := normalizePlatform(req.PlatformID)

	if err := s.checkUserUniqueness(ctx, req.LoginName, req.Email, req.Phone, "", platformID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusActive
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = strings.TrimSpace(req.LoginName)
	}

	user := &entity.DbUser{
		UUID:         uuid.NewString(),
		LoginName:    strings.TrimSpace(req.LoginName),
		Nickname:     nickname,
		Email:        strings.TrimSpace(req.Email),
		Phone:        normalizePhone(req.Phone),
		Avatar:       strings.TrimSpace(req.Avatar),
		PlatformID:   platformID,
		Gender:       strings.TrimSpace(req.Gender),
		Birthday:     strings.TrimSpace(req.Birthday),
		Address:      strings.TrimSpace(req.Address),
		Remark:       strings.TrimSpace(req.Remark),
		Status:       status,
		PasswordHash: hash,
		CreatedBy:    "system",
		UpdatedBy:    "system",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindDuplicateValue, "登录名、邮箱或手机号已存在")
		}
		return nil, err
	}
	return &entity.UserView{DbUser: *user, Roles: []entity.RoleBrief{}}, nil
}

// Update 更新用户。触及唯一字段时校验排除自身，避免保留原值被误判冲突。
func (s *UserService) Update(ctx context.Context, userUUID string, req *entity.UserUpdateRequest, platformID string) (*entity.UserView, error) {
	platformID = normalizePlatform(platformID)

	user, err := s.repo.GetUserByUUID(ctx, userUUID, platformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "用户不存在")
		}
		return nil, err
	}

	loginName := ""
	if req.LoginName != nil {
		loginName = *req.LoginName
	}
	email := ""
	if req.Email != nil {
		email = *req.Email
	}
	if err := s.checkUserUniqueness(ctx, loginName, email, req.Phone, user.UUID, platformID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.LoginName != nil {
		updates["login_name"] = strings.TrimSpace(*req.LoginName)
	}
	if req.Nickname != nil {
		updates["nickname"] = strings.TrimSpace(*req.Nickname)
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = normalizePhone(req.Phone)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if req.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*req.Avatar)
	}
	if req.Gender != nil {
		updates["gender"] = strings.TrimSpace(*req.Gender)
	}
	if req.Birthday != nil {
		updates["birthday"] = strings.TrimSpace(*req.Birthday)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Remark != nil {
		updates["remark"] = strings.TrimSpace(*req.Remark)
	}
	if req.Status != nil {
		updates["status"] = strings.TrimSpace(*req.Status)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateUser(ctx, user.UUID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, userUUID, platformID)
}

// Delete 删除单个用户并级联清理其用户-角色关联。
func (s *UserService) Delete(ctx context.Context, userUUID, platformID string) error {
	return s.BatchDelete(ctx, []string{userUUID}, platformID)
}

// BatchDelete 批量删除用户。关联行先于用户本身删除。
func (s *UserService) BatchDelete(ctx context.Context, uuids []string, platformID string) error {
	if len(uuids) == 0 {
		return newError(KindInvalidInput, "请提供要删除的用户ID列表")
	}
	platformID = normalizePlatform(platformID)

	if err := s.repo.DeleteUserRolesByUsers(ctx, uuids); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteUsers(ctx, uuids, platformID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return newError(KindNotFound, "用户不存在")
	}
	return nil
}

// SetRoles 重置用户的角色集合并返回更新后的用户详情。
func (s *UserService) SetRoles(ctx context.Context, userUUID string, roleIDs []string, platformID string) (*entity.UserView, error) {
	platformID = normalizePlatform(platformID)
	if roleIDs == nil {
		return nil, newError(KindInvalidInput, "角色ID列表格式错误")
	}
	if err := s.relations.SetUserRoles(ctx, userUUID, roleIDs, platformID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userUUID, platformID)
}

func (s *UserService) checkUserUniqueness(ctx context.Context, loginName, email string, phone *string, excludeUUID, platformID string) error {
	if trimmed := strings.TrimSpace(loginName); trimmed != "" {
		exists, err := s.repo.UserLoginNameExists(ctx, trimmed, excludeUUID, platformID)
		if err != nil {
			return err
		}
		if exists {
			return newError(KindDuplicateValue, "登录名已存在")
		}
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		exists, err := s.repo.UserEmailExists(ctx, trimmed, excludeUUID, platformID)
		if err != nil {
			return err
		}
		if exists {
			return newError(KindDuplicateValue, "邮箱已存在")
		}
	}
	if phone != nil {
		if trimmed := strings.TrimSpace(*phone); trimmed != "" {
			exists, err := s.repo.UserPhoneExists(ctx, trimmed, excludeUUID, platformID)
			if err != nil {
				return err
			}
			if exists {
				return newError(KindDuplicateValue, "手机号已存在")
			}
		}
	}
	return nil
}

func normalizePlatform(platformID string) string {
	trimmed := strings.TrimSpace(platformID)
	if trimmed == "" {
		return entity.DefaultPlatformID
	}
	return trimmed
}

func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
