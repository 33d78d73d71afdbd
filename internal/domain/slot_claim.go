package domain

import "time"

// 星期一到星期五，和数据库中 day 字段的取值保持一致
const (
	Monday int32 = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays 是一周内所有可以被认领的天
var Weekdays = []int32{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = map[int32]string{
	Monday:    "星期一",
	Tuesday:   "星期二",
	Wednesday: "星期三",
	Thursday:  "星期四",
	Friday:    "星期五",
}

func WeekdayName(day int32) string {
	if name, exists := weekdayNames[day]; exists {
		return name
	}
	return "未知"
}

func IsWeekday(day int32) bool {
	return day >= Monday && day <= Friday
}

// SlotClaim 是某位家长对某一天接送时段的认领记录。
// 记录一旦创建就不会被修改，要变更只能先删除再重新创建。
// 不变式：DropOff 和 PickUp 至少要有一个为 true。
type SlotClaim struct {
	ID          int64     `json:"id"`
	Participant string    `json:"participant"`
	Day         int32     `json:"day"`
	DropOff     bool      `json:"dropOff"`
	PickUp      bool      `json:"pickUp"`
	CreatedAt   time.Time `json:"createdAt"`
}
