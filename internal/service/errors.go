package service

import "errors"

// ==================== 业务错误 ====================
// controller 按错误类别映射状态码：
// ErrNotFound -> 404, ErrConflict -> 409, ErrValidation -> 400, 其余 -> 500

var (
	ErrNotFound   = errors.New("记录不存在")
	ErrConflict   = errors.New("记录冲突")
	ErrValidation = errors.New("参数校验失败")
)
