package domain

import "errors"

// ErrNotFound 在删除或查询的记录不存在时返回，
// 调用方需要能把它和真正的存储故障区分开
var ErrNotFound = errors.New("记录不存在")
