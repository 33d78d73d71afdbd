package engine

import "github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"

type MutationOp string

const (
	OpInsertClaim   MutationOp = "insertClaim"
	OpDeleteClaim   MutationOp = "deleteClaim"
	OpInsertHoliday MutationOp = "insertHoliday"
	OpDeleteHoliday MutationOp = "deleteHoliday"
)

// Mutation 是一次批量写入中的单个操作。
// 插入操作通过 Claim / Holiday 指针把存储分配的 id 和 created_at 回填给调用方
type Mutation struct {
	Op      MutationOp
	Claim   *domain.SlotClaim
	Holiday *domain.HolidayMark
	ID      int64
}

// SlotStore 是引擎对存储协作方的全部要求。
// 权威状态完全放在共享存储里，引擎自己不做任何跨参与者的锁，
// 存储通过显式注入传进来，方便在测试里替换成内存实现。
type SlotStore interface {
	// ListClaims 返回当前全部认领记录，顺序由存储决定
	ListClaims() ([]*domain.SlotClaim, error)
	// ListHolidays 返回当前全部假日记录
	ListHolidays() ([]*domain.HolidayMark, error)
	// BatchApply 把一批操作作为不可分割的整体写入，
	// 任何一个操作失败时整批都不能生效
	BatchApply(muts []Mutation) error
	// DeleteClaim 删除单条认领记录，记录不存在时返回 domain.ErrNotFound
	DeleteClaim(id int64) error
}
