package engine

import (
	"errors"
	"fmt"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
)

// ErrInvalidProposal 表示提案本身不合法：
// 空提案、某天一个时段都没勾选、或者提案涉及假日
var ErrInvalidProposal = errors.New("无效的认领提案")

// ConflictError 表示提交时有时段已经被别人认领，且调用方没有确认顶替。
// Conflicts 是提交时刻重新计算出来的最新冲突列表，调用方需要拿着它
// 重新向用户确认
type ConflictError struct {
	Conflicts []schedule.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("存在 %d 个时段冲突，需要确认顶替后才能提交", len(e.Conflicts))
}

// StoreError 表示对存储的某次调用失败了。
// 引擎不做任何重试，原样上报给调用方，重试策略属于存储方或展示层
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("存储操作失败（%s）: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// wrapStoreErr 保留 domain.ErrNotFound 这类哨兵错误的可判定性
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
