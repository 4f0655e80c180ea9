package entity

// Response 统一响应信封：成功 code=200，失败 code=-1。
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// Meta 分页元信息。
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// BaseParams 通用分页查询参数。
type BaseParams struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// Normalize 补全缺省分页值：page 从 1 开始，pageSize 默认 10。
func (p *BaseParams) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
}

// BatchDeleteRequest 批量删除载荷。
type BatchDeleteRequest struct {
	UUIDs []string `json:"uuids"`
}
