package handler

import (
	"errors"
	"net/http"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
)

func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.repository.ListHolidays()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取假日列表成功", holidays)
}

func (h *Handler) ToggleHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day int32 `json:"day" validate:"required,min=1,max=5"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.engine.ToggleHoliday(req.Day)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidProposal):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyChanged("holidays")

	if result.Marked {
		h.successResponse(w, r, "已标记为假日", result)
		return
	}
	h.successResponse(w, r, "已取消假日标记", result)
}
