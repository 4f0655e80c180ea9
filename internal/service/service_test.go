package service

import (
	"adminbase/internal/auth"
	"adminbase/internal/entity"
	"adminbase/internal/model"
	modelsql "adminbase/internal/model/sql"
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestRepo 基于内存 SQLite 构造仓库，与生产环境保持同样的 GORM 配置。
func newTestRepo(t *testing.T) model.Repository {
	t.Helper()

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
	return modelsql.NewGormRepository(db)
}

func mustCreateUser(t *testing.T, repo model.Repository, loginName, password, status, platformID string) *entity.DbUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &entity.DbUser{
		UUID:         uuid.NewString(),
		LoginName:    loginName,
		Nickname:     loginName,
		Email:        loginName + "@" + platformID + ".example.com",
		Status:       status,
		PlatformID:   platformID,
		PasswordHash: hash,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("创建用户 %s 失败: %v", loginName, err)
	}
	return user
}

func mustCreateRole(t *testing.T, repo model.Repository, code, status, platformID string) *entity.DbRole {
	t.Helper()

	role := &entity.DbRole{
		UUID:       uuid.NewString(),
		Name:       code,
		Code:       code,
		Status:     status,
		PlatformID: platformID,
	}
	if err := repo.CreateRole(context.Background(), role); err != nil {
		t.Fatalf("创建角色 %s 失败: %v", code, err)
	}
	return role
}

func mustCreateMenu(t *testing.T, repo model.Repository, name, parentID, permission, status, platformID string, sort int) *entity.DbMenu {
	t.Helper()

	menu := &entity.DbMenu{
		UUID:       uuid.NewString(),
		Name:       name,
		Path:       "/" + name,
		ParentID:   parentID,
		Type:       entity.MenuTypeMenu,
		Permission: permission,
		Sort:       sort,
		Status:     status,
		PlatformID: platformID,
	}
	if err := repo.CreateMenu(context.Background(), menu); err != nil {
		t.Fatalf("创建菜单 %s 失败: %v", name, err)
	}
	return menu
}
