package domain

import "time"

// 参与接送的家长，名单在部署时就固定下来，不支持动态注册
type Participant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Tag       string    `json:"tag"`
	Color     string    `json:"color"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
