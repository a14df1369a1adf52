package utils

// Pagination 列表查询的页码参数，零值归一化到第一页
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// PageResult 分页响应
type PageResult struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// GetPageOffset 归一化页码并返回 offset/limit
// limit 封顶 100，防止一次请求拉全表
func (p *Pagination) GetPageOffset() (int, int) {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit < 1:
		p.Limit = 10
	case p.Limit > 100:
		p.Limit = 100
	}
	return (p.Page - 1) * p.Limit, p.Limit
}
