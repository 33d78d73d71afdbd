package handler

type ContextKey string

var (
	ParticipantCtx ContextKey = "participant"
)
