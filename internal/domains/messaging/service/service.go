package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"vista/infras/otel"
	activityModel "vista/internal/domains/activity/model"
	activityService "vista/internal/domains/activity/service"
	"vista/internal/domains/messaging/model"
	"vista/internal/domains/messaging/model/dto"
	"vista/internal/domains/messaging/repository"
	profileModel "vista/internal/domains/profile/model"
	profileRepo "vista/internal/domains/profile/repository"
	"vista/shared"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"
)

const (
	directThreadSize = 2
	inboxSortBy      = "COALESCE(threads.last_message_time, threads.created_at)"
)

type Messaging interface {
	Inbox(ctx context.Context) (dto.InboxResponse, error)
	StartThread(ctx context.Context, req dto.StartThreadRequest) (dto.StartThreadResponse, error)
	Messages(ctx context.Context, threadID string, req gDto.QueryParams) (dto.GetMessagesResponse, error)
	Reply(ctx context.Context, threadID string, req dto.ReplyRequest) (dto.MessageResponse, error)
}

type serviceImpl struct {
	threadRepo      repository.Thread
	participantRepo repository.Participant
	messageRepo     repository.Message
	profileRepo     profileRepo.Profile
	otel            otel.Otel
	publisher       activityService.Publisher
}

func New(
	threadRepo repository.Thread,
	participantRepo repository.Participant,
	messageRepo repository.Message,
	profileRepo profileRepo.Profile,
	otel otel.Otel,
	publisher activityService.Publisher,
) Messaging {
	return &serviceImpl{
		threadRepo:      threadRepo,
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
		profileRepo:     profileRepo,
		otel:            otel,
		publisher:       publisher,
	}
}

func (s *serviceImpl) Inbox(ctx context.Context) (res dto.InboxResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Inbox")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	res.Threads = []dto.ThreadResponse{}

	memberships, err := s.participantRepo.GetAll(ctx, gDto.QueryParams{}, participantFilter(model.FieldProfileID, user))
	if err != nil {
		log.Error().Err(err).Msg("failed to get thread memberships")

		return res, fmt.Errorf("failed to get thread memberships: %w", err)
	}

	if len(memberships) == 0 {
		return res, nil
	}

	ids := make([]string, len(memberships))
	for i, membership := range memberships {
		ids[i] = membership.ThreadID
	}

	params := gDto.QueryParams{SortBy: inboxSortBy, SortDir: gDto.SortDirDesc}
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(model.FieldID, model.ThreadTableName, ids)},
	}

	threads, err := s.threadRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get threads")

		return res, fmt.Errorf("failed to get threads: %w", err)
	}

	res.Threads, err = s.describe(ctx, threads, user)
	if err != nil {
		return res, err
	}

	return res, nil
}

// StartThread finds or creates the conversation between the caller and the given profiles.
// Only two-person threads are reused; group threads are always new.
func (s *serviceImpl) StartThread(ctx context.Context, req dto.StartThreadRequest) (res dto.StartThreadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartThread")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	members := mapset.NewThreadUnsafeSet(req.ParticipantIDs...)
	members.Add(user)
	members.Remove(constant.Empty)

	memberIDs := members.ToSlice()
	slices.Sort(memberIDs)

	if len(memberIDs) < directThreadSize {
		return res, failure.BadRequestFromString("a thread needs at least one other participant")
	}

	known, err := s.profileRepo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(profileModel.FieldID, profileModel.TableName, memberIDs)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check participants")

		return res, fmt.Errorf("failed to check participants: %w", err)
	}

	if known != len(memberIDs) {
		return res, failure.NotFound("participant not found")
	}

	var thread model.Thread

	if len(memberIDs) == directThreadSize {
		thread, res.Reused, err = s.findDirectThread(ctx, memberIDs)
		if err != nil {
			return res, err
		}
	}

	if !res.Reused {
		thread = req.ToModel(user)
	}

	var first *model.Message

	if req.Message != constant.Empty {
		reply := dto.ReplyRequest{Content: req.Message}
		message := reply.ToModel(thread.ID, user)

		first = &message
		thread.LastMessageTime = &message.CreatedAt
	}

	switch {
	case !res.Reused:
		if err = s.threadRepo.Open(ctx, thread, dto.ToParticipantModels(thread.ID, memberIDs), first); err != nil {
			log.Error().Err(err).Msg("failed to create thread")

			return res, fmt.Errorf("failed to create thread: %w", err)
		}
	case first != nil:
		if _, err = s.appendMessage(ctx, *first); err != nil {
			return res, err
		}
	}

	if first != nil {
		s.publisher.Publish(ctx, activityModel.EventMessageSent, user, thread.ID)
	}

	described, err := s.describe(ctx, []model.Thread{thread}, user)
	if err != nil {
		return res, err
	}

	res.Thread = described[0]

	return res, nil
}

func (s *serviceImpl) Messages(ctx context.Context, threadID string, req gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Messages")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, _, err = s.authorize(ctx, threadID, user); err != nil {
		return res, err
	}

	req.SortBy = model.MessageTableName + "." + constant.FieldCreatedAt
	req.SortDir = gDto.SortDirAsc

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    model.FieldThreadID,
			Operator: gDto.FilterOperatorEq,
			Value:    threadID,
			Table:    model.MessageTableName,
		}},
	}

	total, err := s.messageRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count messages")

		return res, fmt.Errorf("failed to count messages: %w", err)
	}

	messages, err := s.messageRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get messages")

		return res, fmt.Errorf("failed to get messages: %w", err)
	}

	res.FromModels(messages, user, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Reply(ctx context.Context, threadID string, req dto.ReplyRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reply")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	_, sender, err := s.authorize(ctx, threadID, user)
	if err != nil {
		return res, err
	}

	message := req.ToModel(threadID, user)
	message.SenderFirstName = sender.FirstName
	message.SenderLastName = sender.LastName

	if message, err = s.appendMessage(ctx, message); err != nil {
		return res, err
	}

	s.publisher.Publish(ctx, activityModel.EventMessageSent, user, threadID)

	res.FromModel(message, user)

	return res, nil
}

// authorize loads the thread and the caller's participant row.
func (s *serviceImpl) authorize(ctx context.Context, threadID, user string) (model.Thread, model.Participant, error) {
	thread, err := s.threadRepo.Get(ctx, shared.FilterByID(threadID, model.FieldID, model.ThreadTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get thread")

		return thread, model.Participant{}, fmt.Errorf("failed to get thread: %w", err)
	}

	if thread.ID == constant.Empty {
		return thread, model.Participant{}, failure.NotFound("thread not found")
	}

	participants, err := s.participantRepo.GetAll(ctx, gDto.QueryParams{}, participantFilter(model.FieldThreadID, threadID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get thread participants")

		return thread, model.Participant{}, fmt.Errorf("failed to get thread participants: %w", err)
	}

	idx := slices.IndexFunc(participants, func(p model.Participant) bool { return p.ProfileID == user })
	if idx < 0 {
		return thread, model.Participant{}, failure.Forbidden("you are not a participant of this thread")
	}

	return thread, participants[idx], nil
}

// findDirectThread looks for a thread whose participant set is exactly the two members.
// The oldest match wins when duplicates already exist.
func (s *serviceImpl) findDirectThread(ctx context.Context, members []string) (model.Thread, bool, error) {
	rows, err := s.participantRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(model.FieldProfileID, model.ParticipantTableName, members)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get memberships")

		return model.Thread{}, false, fmt.Errorf("failed to get memberships: %w", err)
	}

	first, second := mapset.NewThreadUnsafeSet[string](), mapset.NewThreadUnsafeSet[string]()

	for _, row := range rows {
		if row.ProfileID == members[0] {
			first.Add(row.ThreadID)
		} else {
			second.Add(row.ThreadID)
		}
	}

	common := first.Intersect(second).ToSlice()
	if len(common) == 0 {
		return model.Thread{}, false, nil
	}

	candidates, err := s.participantRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(model.FieldThreadID, model.ParticipantTableName, common)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get candidate threads")

		return model.Thread{}, false, fmt.Errorf("failed to get candidate threads: %w", err)
	}

	sizes := map[string]int{}
	for _, candidate := range candidates {
		sizes[candidate.ThreadID]++
	}

	exact := []string{}

	for id, size := range sizes {
		if size == directThreadSize {
			exact = append(exact, id)
		}
	}

	if len(exact) == 0 {
		return model.Thread{}, false, nil
	}

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.ThreadTableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	threads, err := s.threadRepo.GetAll(ctx, params, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(model.FieldID, model.ThreadTableName, exact)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get direct thread")

		return model.Thread{}, false, fmt.Errorf("failed to get direct thread: %w", err)
	}

	if len(threads) == 0 {
		return model.Thread{}, false, nil
	}

	return threads[0], true, nil
}

// appendMessage stores the message and moves the thread's last_message_time to it.
func (s *serviceImpl) appendMessage(ctx context.Context, message model.Message) (model.Message, error) {
	if err := s.threadRepo.Append(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to send message")

		return message, fmt.Errorf("failed to send message: %w", err)
	}

	return message, nil
}

// describe attaches participants and the latest message to each thread, keeping the input order.
func (s *serviceImpl) describe(ctx context.Context, threads []model.Thread, viewer string) ([]dto.ThreadResponse, error) {
	res := make([]dto.ThreadResponse, len(threads))
	if len(threads) == 0 {
		return res, nil
	}

	ids := make([]string, len(threads))
	for i, thread := range threads {
		ids[i] = thread.ID
	}

	participants, err := s.participantRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterIn(model.FieldThreadID, model.ParticipantTableName, ids)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get thread participants")

		return res, fmt.Errorf("failed to get thread participants: %w", err)
	}

	latest, err := s.messageRepo.Latest(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get latest messages")

		return res, fmt.Errorf("failed to get latest messages: %w", err)
	}

	byThread := map[string][]model.Participant{}
	for _, participant := range participants {
		byThread[participant.ThreadID] = append(byThread[participant.ThreadID], participant)
	}

	lastByThread := map[string]model.Message{}
	for _, message := range latest {
		lastByThread[message.ThreadID] = message
	}

	for i, thread := range threads {
		var last *model.Message
		if message, ok := lastByThread[thread.ID]; ok {
			last = &message
		}

		res[i].FromModel(thread, byThread[thread.ID], last, viewer)
	}

	return res, nil
}

func participantFilter(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.ParticipantTableName,
		}},
	}
}
