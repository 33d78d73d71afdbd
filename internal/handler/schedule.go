package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.ReadSnapshot()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取本周安排成功", snapshot)
}

// LiveSchedule 是实时同步端点：以 SSE 的形式持续推送完整快照，
// 连接期间任何参与者的变更都会触发一次推送
func (h *Handler) LiveSchedule(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.errorResponse(w, r, "当前连接不支持实时推送")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// 长连接不能受服务器 WriteTimeout 的限制
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots, cancel := h.broadcaster.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, open := <-snapshots:
			if !open {
				return
			}

			body, err := json.Marshal(snapshot)
			if err != nil {
				h.logInternalServerError(r, err)
				return
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", body); err != nil {
				// 客户端断开了，直接结束
				return
			}
			flusher.Flush()
		}
	}
}
