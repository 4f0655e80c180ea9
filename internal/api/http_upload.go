package api

import (
	"adminbase/internal/storage"
	"adminbase/internal/utils"
	"io"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// 头像上传大小上限，5MB。
const maxAvatarSize = 5 << 20

// avatarInlineRequest 内联 base64 上传载荷（data URL 或裸 base64）。
type avatarInlineRequest struct {
	Data string `json:"data" binding:"required"`
}

// UploadAvatar 上传头像文件并返回可访问的 URL。
//
// 支持两种形式：multipart 表单的 file 字段，或 JSON 载荷中的 base64 数据。
func (h *HTTPHandler) UploadAvatar(c *gin.Context) {
	contentType := c.ContentType()

	var (
		data []byte
		ext  string
	)

	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			Fail(c, "请选择要上传的文件")
			return
		}
		if fileHeader.Size > maxAvatarSize {
			Fail(c, "文件大小超过限制")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			Fail(c, "读取上传文件失败")
			return
		}
		defer file.Close()

		data, err = io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
		if err != nil {
			Fail(c, "读取上传文件失败")
			return
		}
		if len(data) > maxAvatarSize {
			Fail(c, "文件大小超过限制")
			return
		}

		ext = strings.TrimPrefix(strings.ToLower(path.Ext(fileHeader.Filename)), ".")
	} else {
		var req avatarInlineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, "请求参数错误: "+err.Error())
			return
		}
		decoded, guessedExt, err := utils.DecodeMediaPayload(req.Data)
		if err != nil {
			Fail(c, "解析图片数据失败")
			return
		}
		if len(decoded) > maxAvatarSize {
			Fail(c, "文件大小超过限制")
			return
		}
		data = decoded
		ext = guessedExt
	}

	if len(data) == 0 {
		Fail(c, "上传内容为空")
		return
	}
	if ext == "" {
		ext = "jpg"
	}

	relPath, err := h.storage.Save(c.Request.Context(), data, storage.SaveOptions{
		Category:  "avatars",
		Extension: ext,
	})
	if err != nil {
		FailFromError(c, err, "保存文件失败")
		return
	}

	Success(c, gin.H{"url": h.publicURL(relPath)}, "上传成功")
}

// publicURL 把存储返回的相对路径拼成客户端可访问的 URL。
func (h *HTTPHandler) publicURL(relPath string) string {
	cleaned := strings.TrimLeft(strings.TrimSpace(relPath), "/")
	if cleaned == "" {
		return h.storagePublicBase
	}
	return h.storagePublicBase + "/" + cleaned
}
