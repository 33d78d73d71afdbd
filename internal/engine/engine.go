package engine

import (
	"fmt"
	"sort"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/utils"
)

// Engine 负责把一份认领提案落到存储里：提交时刻重新做冲突检查，
// 需要顶替时把被顶替的记录和新记录放在同一个原子批次里写入
type Engine struct {
	store SlotStore
}

func NewEngine(store SlotStore) *Engine {
	return &Engine{store: store}
}

// CommitResult 是一次成功提交的结果
type CommitResult struct {
	Created    []*domain.SlotClaim  `json:"created"`
	Superseded []*domain.SlotClaim  `json:"superseded"`
	Evaluation *schedule.Evaluation `json:"evaluation"`
}

// Snapshot 是存储当前状态的一致读取，加上由它推导出的周视图
type Snapshot struct {
	Claims   []*domain.SlotClaim   `json:"claims"`
	Holidays []*domain.HolidayMark `json:"holidays"`
	Schedule schedule.WeekSchedule `json:"schedule"`
}

// ReadSnapshot 读取当前的认领和假日记录并完成投影
func (e *Engine) ReadSnapshot() (*Snapshot, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, wrapStoreErr("读取认领记录", err)
	}

	holidays, err := e.store.ListHolidays()
	if err != nil {
		return nil, wrapStoreErr("读取假日记录", err)
	}

	return &Snapshot{
		Claims:   claims,
		Holidays: holidays,
		Schedule: schedule.Project(claims, holidays),
	}, nil
}

// Commit 提交一份认领提案。
//
// 冲突是针对提交时刻的最新存储状态重新计算的，而不是用户看到预览时
// 的旧快照，避免确认窗口期间别人抢先认领带来的错判。存在冲突且
// allowOverride 为 false 时返回 *ConflictError，调用方必须拿着最新的
// 冲突列表重新确认；allowOverride 为 true 时，被顶替的他人记录整条
// 删除，和新插入的记录放在同一个原子批次里提交。
func (e *Engine) Commit(proposer string, proposal schedule.Proposal, allowOverride bool) (*CommitResult, error) {
	if err := utils.ValidateProposal(proposal); err != nil {
		return nil, fmt.Errorf("%w：%v", ErrInvalidProposal, err)
	}

	snapshot, err := e.ReadSnapshot()
	if err != nil {
		return nil, err
	}

	// 假日当天不可认领，必须在进入冲突解析之前拒绝
	if err := utils.ValidateProposalAgainstHolidays(proposal, snapshot.Holidays); err != nil {
		return nil, fmt.Errorf("%w：%v", ErrInvalidProposal, err)
	}

	eval := schedule.Evaluate(proposer, proposal, snapshot.Schedule)

	if eval.HasConflicts() && !allowOverride {
		return nil, &ConflictError{Conflicts: eval.Conflicts}
	}

	muts := []Mutation{}
	superseded := []*domain.SlotClaim{}

	if eval.HasConflicts() {
		// 找出覆盖了冲突时段的他人记录，整条删除。
		// 一条记录可能同时覆盖多个冲突时段，注意去重
		supersededIDs := map[int64]bool{}
		for _, conflict := range eval.Conflicts {
			for _, claim := range snapshot.Claims {
				if claim.Day != conflict.Day || claim.Participant == proposer {
					continue
				}
				covers := (conflict.Slot == schedule.SlotDropOff && claim.DropOff) ||
					(conflict.Slot == schedule.SlotPickUp && claim.PickUp)
				if !covers || supersededIDs[claim.ID] {
					continue
				}
				supersededIDs[claim.ID] = true
				superseded = append(superseded, claim)
				muts = append(muts, Mutation{Op: OpDeleteClaim, ID: claim.ID})
			}
		}
	}

	// 每个勾选了时段的 day 插入一条新记录，
	// 同一天的接和送放在同一条记录里，不再拆分
	days := make([]int32, 0, len(proposal))
	for day := range proposal {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	created := make([]*domain.SlotClaim, 0, len(days))
	for _, day := range days {
		selection := proposal[day]
		claim := &domain.SlotClaim{
			Participant: proposer,
			Day:         day,
			DropOff:     selection.DropOff,
			PickUp:      selection.PickUp,
		}
		created = append(created, claim)
		muts = append(muts, Mutation{Op: OpInsertClaim, Claim: claim})
	}

	if err := e.store.BatchApply(muts); err != nil {
		return nil, wrapStoreErr("提交认领记录", err)
	}

	return &CommitResult{
		Created:    created,
		Superseded: superseded,
		Evaluation: eval,
	}, nil
}

// RemoveOne 删除单条认领记录，记录不存在时返回 domain.ErrNotFound，
// 此时存储中的记录不会有任何变化
func (e *Engine) RemoveOne(id int64) error {
	if err := e.store.DeleteClaim(id); err != nil {
		return wrapStoreErr("删除认领记录", err)
	}
	return nil
}

// RemoveAll 把一组认领记录作为一个原子批次删除
func (e *Engine) RemoveAll(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	muts := make([]Mutation, len(ids))
	for i, id := range ids {
		muts[i] = Mutation{Op: OpDeleteClaim, ID: id}
	}

	if err := e.store.BatchApply(muts); err != nil {
		return wrapStoreErr("批量删除认领记录", err)
	}
	return nil
}

// ToggleResult 是一次假日开关的结果
type ToggleResult struct {
	Day    int32               `json:"day"`
	Marked bool                `json:"marked"`
	Mark   *domain.HolidayMark `json:"mark"`
}

// ToggleHoliday 切换某一天的假日标记：有则删，无则加。
// 这是一个先读后写的操作，两个人同时切换同一天时存在很窄的竞争窗口，
// 这是已知并且可以接受的：最后一次成功的写入胜出
func (e *Engine) ToggleHoliday(day int32) (*ToggleResult, error) {
	if !domain.IsWeekday(day) {
		return nil, fmt.Errorf("%w：%d 不是有效的工作日", ErrInvalidProposal, day)
	}

	holidays, err := e.store.ListHolidays()
	if err != nil {
		return nil, wrapStoreErr("读取假日记录", err)
	}

	for _, holiday := range holidays {
		if holiday.Day == day {
			muts := []Mutation{{Op: OpDeleteHoliday, ID: holiday.ID}}
			if err := e.store.BatchApply(muts); err != nil {
				return nil, wrapStoreErr("取消假日标记", err)
			}
			return &ToggleResult{Day: day, Marked: false}, nil
		}
	}

	mark := &domain.HolidayMark{Day: day}
	muts := []Mutation{{Op: OpInsertHoliday, Holiday: mark}}
	if err := e.store.BatchApply(muts); err != nil {
		return nil, wrapStoreErr("添加假日标记", err)
	}

	return &ToggleResult{Day: day, Marked: true, Mark: mark}, nil
}

// OwnClaims 返回某位家长自己的全部认领记录
func (e *Engine) OwnClaims(participant string) ([]*domain.SlotClaim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, wrapStoreErr("读取认领记录", err)
	}

	own := []*domain.SlotClaim{}
	for _, claim := range claims {
		if claim.Participant == participant {
			own = append(own, claim)
		}
	}
	return own, nil
}
