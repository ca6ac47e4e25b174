package messaging

import (
	"net/http"
	"vista/infras/otel"
	"vista/internal/domains/messaging/model/dto"
	"vista/internal/domains/messaging/service"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/validator"
	"vista/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Messaging
	otel    otel.Otel
}

func New(service service.Messaging, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/threads", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInbox)
		routerGroup.Post("/", handler.StartThread)
		routerGroup.Get("/{id}/messages", handler.GetMessages)
		routerGroup.Post("/{id}/messages", handler.Reply)
	})
}

// GetInbox lists the caller's conversations, most recently active first.
// @Summary Get inbox
// @Tags Messaging
// @Produce json
// @Success 200 {object} dto.InboxResponse "Threads"
// @Failure 500 {object} response.Error
// @Router /v1/threads [get]
// @Security BearerAuth
func (handler *Handler) GetInbox(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInbox")
	defer scope.End()

	res, err := handler.service.Inbox(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inbox")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// StartThread opens a conversation, reusing an existing one between the same two people.
// @Summary Start a thread
// @Tags Messaging
// @Accept json
// @Produce json
// @Param request body dto.StartThreadRequest true "Start Thread Request"
// @Success 200 {object} dto.StartThreadResponse "Thread"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/threads [post]
// @Security BearerAuth
func (handler *Handler) StartThread(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartThread")
	defer scope.End()

	req := dto.StartThreadRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.StartThread(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start thread")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMessages pages through a thread, oldest first.
// @Summary Get thread messages
// @Tags Messaging
// @Produce json
// @Param id path string true "Thread ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetMessagesResponse "Messages"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/threads/{id}/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.Messages(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Reply appends a message to a thread.
// @Summary Reply to a thread
// @Tags Messaging
// @Accept json
// @Produce json
// @Param id path string true "Thread ID"
// @Param request body dto.ReplyRequest true "Reply Request"
// @Success 201 {object} dto.MessageResponse "Message"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/threads/{id}/messages [post]
// @Security BearerAuth
func (handler *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reply")
	defer scope.End()

	req := dto.ReplyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reply(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
