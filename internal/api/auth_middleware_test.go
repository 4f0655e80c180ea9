package api

import (
	"adminbase/internal/auth"
	"adminbase/internal/entity"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := auth.NewManager("test-secret", "adminbase-test", time.Hour)
	if err != nil {
		t.Fatalf("创建 JWT 管理器失败: %v", err)
	}

	h := &HTTPHandler{authManager: manager}
	r := gin.New()
	r.GET("/protected", h.AuthMiddleware(), func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			FailWithStatus(c, http.StatusInternalServerError, "上下文缺少认证声明")
			return
		}
		Success(c, gin.H{"uuid": claims.UUID}, "ok")
	})
	return r, manager
}

func TestAuthMiddleware(t *testing.T) {
	r, manager := newAuthTestRouter(t)

	user := &entity.DbUser{UUID: "u-1", LoginName: "alice", PlatformID: entity.DefaultPlatformID}
	token, _, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "缺少授权头", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "授权头格式错误", authHeader: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "空令牌", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "伪造令牌", authHeader: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "有效令牌", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("HTTP 状态期望 %d，实际 %d，响应 %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareClaimsInContext(t *testing.T) {
	r, manager := newAuthTestRouter(t)

	user := &entity.DbUser{UUID: "u-42", LoginName: "bob", PlatformID: "tenant-b"}
	token, _, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("HTTP 状态期望 200，实际 %d", w.Code)
	}
	body := w.Body.String()
	if want := `"u-42"`; !strings.Contains(body, want) {
		t.Errorf("响应应包含声明中的 uuid %s，实际 %s", want, body)
	}
}
