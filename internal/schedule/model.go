package schedule

import "github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"

// SlotType: 一天中的两个时段角色
type SlotType string

const (
	SlotDropOff SlotType = "dropOff"
	SlotPickUp  SlotType = "pickUp"
)

// DaySelection 表示提案中对某一天的勾选情况
type DaySelection struct {
	DropOff bool
	PickUp  bool
}

// Proposal: 某位家长一次性提交的认领提案，key 是 day
type Proposal map[int32]DaySelection

// DaySchedule 是投影出来的某一天的安排
type DaySchedule struct {
	DropOff   string `json:"dropOff"`
	PickUp    string `json:"pickUp"`
	IsHoliday bool   `json:"isHoliday"`
}

// WeekSchedule 是由当前认领记录和假日记录推导出来的周视图，
// 只在内存中计算，从不落库
type WeekSchedule map[int32]*DaySchedule

// NewWeekSchedule 把周一到周五都初始化为无人认领、非假日
func NewWeekSchedule() WeekSchedule {
	ws := make(WeekSchedule, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		ws[day] = &DaySchedule{}
	}
	return ws
}

// Owner 返回某天某个时段当前的认领人，没有则返回空字符串
func (ws WeekSchedule) Owner(day int32, slot SlotType) string {
	ds, exists := ws[day]
	if !exists {
		return ""
	}
	if slot == SlotDropOff {
		return ds.DropOff
	}
	return ds.PickUp
}

// Conflict 表示提案中的某个时段已经被别人认领
type Conflict struct {
	Day   int32    `json:"day"`
	Slot  SlotType `json:"slot"`
	Owner string   `json:"owner"`
}

// CleanSlot 表示提案中可以直接生效的时段
type CleanSlot struct {
	Day  int32    `json:"day"`
	Slot SlotType `json:"slot"`
}

// Evaluation 是 Evaluate 的结果，干净时段和冲突时段分开返回，
// 如何处理由调用方决定
type Evaluation struct {
	Clean     []CleanSlot `json:"clean"`
	Conflicts []Conflict  `json:"conflicts"`
}

func (e *Evaluation) HasConflicts() bool {
	return len(e.Conflicts) > 0
}
