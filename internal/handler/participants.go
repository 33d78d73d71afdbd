package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
)

func (h *Handler) GetAllParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.repository.GetAllParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取参与者名单成功", participants)
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	h.successResponse(w, r, "获取参与者信息成功", p)
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	var req struct {
		Color *string `json:"color" validate:"omitempty,hexcolor"`
		Email *string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.Email != nil {
		p.Email = *req.Email
	}

	if err := h.repository.UpdateParticipant(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 版本号对不上，说明别人刚改过，让用户拿最新数据重试
			h.errorResponse(w, r, "请重试")
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "participants_email_key":
				h.errorResponse(w, r, "邮箱已被使用")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新参与者信息成功", p)
}
