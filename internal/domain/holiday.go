package domain

import "time"

// HolidayMark 表示某一天放假，当天不需要接送。
// 每一天最多只会有一条记录，标记和取消都通过 toggle 完成。
type HolidayMark struct {
	ID        int64     `json:"id"`
	Day       int32     `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}
