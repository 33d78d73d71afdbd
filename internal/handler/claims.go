package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
)

func (h *Handler) SubmitClaims(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Participant   string `json:"participant" validate:"required"`
		AllowOverride bool   `json:"allowOverride"`
		Selections    []struct {
			Day     int32 `json:"day" validate:"required,min=1,max=5"`
			DropOff bool  `json:"dropOff"`
			PickUp  bool  `json:"pickUp"`
		} `json:"selections" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 提案人必须在固定名单里
	proposer, err := h.lookupParticipant(req.Participant)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.errorResponse(w, r, "参与者不存在")
		} else {
			h.internalServerError(w, r, err)
		}
		return
	}

	proposal := make(schedule.Proposal, len(req.Selections))
	for _, selection := range req.Selections {
		proposal[selection.Day] = schedule.DaySelection{
			DropOff: selection.DropOff,
			PickUp:  selection.PickUp,
		}
	}

	result, err := h.engine.Commit(proposer.Name, proposal, req.AllowOverride)
	if err != nil {
		var conflictErr *engine.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.conflictResponse(w, r, conflictErr.Conflicts)
		case errors.Is(err, engine.ErrInvalidProposal):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 被顶替的家长会收到邮件通知，通知失败不影响已经生效的提交
	for _, claim := range result.Superseded {
		if err := h.notifySuperseded(claim, proposer.Name); err != nil {
			slog.Warn("无法发送顶替通知", "participant", claim.Participant, "error", err)
		}
	}

	h.notifyChanged("claims")

	if len(result.Superseded) > 0 {
		h.successResponse(w, r, "提交认领成功，已顶替他人时段", result)
		return
	}
	h.successResponse(w, r, "提交认领成功", result)
}

func (h *Handler) RemoveClaim(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "认领记录ID无效")
		return
	}

	if err := h.engine.RemoveOne(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "认领记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyChanged("claims")
	h.successResponse(w, r, "删除认领记录成功", nil)
}

func (h *Handler) GetOwnClaims(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	claims, err := h.engine.OwnClaims(p.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取认领记录成功", claims)
}

func (h *Handler) ClearOwnClaims(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	claims, err := h.engine.OwnClaims(p.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(claims) == 0 {
		h.successResponse(w, r, "没有需要清空的认领记录", nil)
		return
	}

	ids := make([]int64, len(claims))
	for i, claim := range claims {
		ids[i] = claim.ID
	}

	if err := h.engine.RemoveAll(ids); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// 其中一条刚被别人删掉了，让用户拿最新数据重试
			h.errorResponse(w, r, "认领记录已发生变化，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyChanged("claims")
	h.successResponse(w, r, "清空认领记录成功", len(ids))
}
