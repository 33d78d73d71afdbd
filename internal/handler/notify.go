package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/utils"
)

// lookupParticipant 按名字查参与者，把 sql.ErrNoRows 翻译成 domain.ErrNotFound
func (h *Handler) lookupParticipant(name string) (*domain.Participant, error) {
	p, err := h.repository.GetParticipantByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// notifySuperseded 给被顶替的家长发一封通知邮件（经由 notify_queue）
func (h *Handler) notifySuperseded(claim *domain.SlotClaim, supersederName string) error {
	p, err := h.lookupParticipant(claim.Participant)
	if err != nil {
		return err
	}

	msg := domain.NotifyMessage{
		Type: "claim_superseded",
		To:   p.Email,
		Data: domain.ClaimSupersededNotifyData{
			Name:       p.Name,
			Superseder: supersederName,
			DayName:    domain.WeekdayName(claim.Day),
			Slots:      utils.SlotsLabel(claim),
		},
	}

	return h.publishNotify(msg)
}

func (h *Handler) publishNotify(msg domain.NotifyMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notify_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// notifyChanged 广播一次状态变更，让所有在线的订阅者刷新。
// 变更已经落库，广播失败只记日志
func (h *Handler) notifyChanged(reason string) {
	if err := h.broadcaster.Notify(reason); err != nil {
		slog.Warn("无法广播变更通知", "reason", reason, "error", err)
	}
}
