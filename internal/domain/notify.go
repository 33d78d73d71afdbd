package domain

// 发往 notify_queue 的通知消息，由 cmd/notify 消费后发送邮件
type NotifyMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ClaimSupersededNotifyData struct {
	Name       string `json:"name"`
	Superseder string `json:"superseder"`
	DayName    string `json:"dayName"`
	Slots      string `json:"slots"`
}

type ScheduleDigestNotifyData struct {
	Name string              `json:"name"`
	Rows []ScheduleDigestRow `json:"rows"`
}

type ScheduleDigestRow struct {
	DayName   string `json:"dayName"`
	DropOff   string `json:"dropOff"`
	PickUp    string `json:"pickUp"`
	IsHoliday bool   `json:"isHoliday"`
}
