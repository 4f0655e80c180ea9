package api

import (
	"adminbase/internal/entity"
	"adminbase/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) entity.Response {
	t.Helper()
	var resp entity.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应信封失败: %v", err)
	}
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"uuid": "u-1"}, "查询成功")

	if w.Code != http.StatusOK {
		t.Errorf("HTTP 状态期望 200，实际 %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != CodeSuccess {
		t.Errorf("业务码期望 %d，实际 %d", CodeSuccess, resp.Code)
	}
	if resp.Message != "查询成功" {
		t.Errorf("消息期望 %q，实际 %q", "查询成功", resp.Message)
	}
	if resp.Data == nil {
		t.Error("data 字段不应为空")
	}
}

func TestFailEnvelopeKeepsHTTP200(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, "登录名已存在")

	// 业务失败保持 HTTP 200，仅用 code=-1 表达
	if w.Code != http.StatusOK {
		t.Errorf("HTTP 状态期望 200，实际 %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != CodeFail {
		t.Errorf("业务码期望 %d，实际 %d", CodeFail, resp.Code)
	}
	if resp.Message != "登录名已存在" {
		t.Errorf("消息期望 %q，实际 %q", "登录名已存在", resp.Message)
	}
	if resp.Data != nil {
		t.Error("失败信封不应携带 data")
	}
}

func TestFailWithStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FailWithStatus(c, http.StatusUnauthorized, "无效的认证令牌")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("HTTP 状态期望 401，实际 %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != CodeFail {
		t.Errorf("业务码期望 %d，实际 %d", CodeFail, resp.Code)
	}
}

func TestFailFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		fallback    string
		expectedMsg string
	}{
		{
			name:        "业务错误透出提示信息",
			err:         &service.Error{Kind: service.KindDuplicateValue, Message: "角色代码已存在"},
			fallback:    "创建角色失败",
			expectedMsg: "角色代码已存在",
		},
		{
			name:        "内部错误使用笼统提示",
			err:         errors.New("dial tcp: connection refused"),
			fallback:    "创建角色失败",
			expectedMsg: "创建角色失败",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/roles", nil)

			FailFromError(c, tt.err, tt.fallback)

			resp := decodeEnvelope(t, w)
			if resp.Code != CodeFail {
				t.Errorf("业务码期望 %d，实际 %d", CodeFail, resp.Code)
			}
			if resp.Message != tt.expectedMsg {
				t.Errorf("消息期望 %q，实际 %q", tt.expectedMsg, resp.Message)
			}
		})
	}
}
