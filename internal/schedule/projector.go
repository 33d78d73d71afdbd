package schedule

import "github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"

// Project 根据当前的认领记录和假日记录计算出本周的权威视图。
// 纯函数，给定相同顺序的输入结果是确定的。
//
// 注意：对同一天同一时段，后扫描到的记录会覆盖先扫描到的记录。
// 正常情况下冲突解析保证了不会出现两条这样的记录，但如果存储里
// 真的出现了（比如手动改库），这里的覆盖顺序取决于存储的返回顺序，
// 不是稳定的业务规则
func Project(claims []*domain.SlotClaim, holidays []*domain.HolidayMark) WeekSchedule {
	ws := NewWeekSchedule()

	for _, holiday := range holidays {
		if ds, exists := ws[holiday.Day]; exists {
			ds.IsHoliday = true
		}
	}

	for _, claim := range claims {
		ds, exists := ws[claim.Day]
		if !exists {
			// day 不在周一到周五范围内的脏数据，直接忽略
			continue
		}
		if claim.DropOff {
			ds.DropOff = claim.Participant
		}
		if claim.PickUp {
			ds.PickUp = claim.Participant
		}
	}

	return ws
}
