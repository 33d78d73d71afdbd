package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/config"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/live"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	engine        *engine.Engine
	broadcaster   *live.Broadcaster
	translator    ut.Translator
	notifyChannel *amqp.Channel

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eng *engine.Engine, broadcaster *live.Broadcaster, notifyCh *amqp.Channel) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		engine:        eng,
		broadcaster:   broadcaster,
		translator:    trans,
		notifyChannel: notifyCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 参与者名单是固定的，身份只是一个选择，不做任何鉴权
	h.Mux.Route("/participants", func(r chi.Router) {
		r.Get("/", h.GetAllParticipants)
		r.Route("/{name}", func(r chi.Router) {
			r.Use(h.participant)
			r.Get("/", h.GetParticipant)
			r.Patch("/", h.UpdateParticipant)
			r.Route("/claims", func(r chi.Router) {
				r.Get("/", h.GetOwnClaims)
				r.Delete("/", h.ClearOwnClaims)
			})
		})
	})

	h.Mux.Route("/schedule", func(r chi.Router) {
		r.Get("/", h.GetSchedule)
		r.Get("/live", h.LiveSchedule)
	})

	h.Mux.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.GetHolidays)
		r.Post("/toggle", h.ToggleHoliday)
	})

	h.Mux.Route("/claims", func(r chi.Router) {
		r.Post("/", h.SubmitClaims)
		r.Delete("/{id}", h.RemoveClaim)
	})
}
