package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	"vista/config"
	"vista/infras/otel/mocks"
	activityModel "vista/internal/domains/activity/model"
	activityMocks "vista/internal/domains/activity/service/mocks"
	profileMocks "vista/internal/domains/profile/mocks"
	profileModel "vista/internal/domains/profile/model"
	logMocks "vista/internal/domains/shiftlog/mocks"
	"vista/internal/domains/shiftlog/model"
	"vista/internal/domains/shiftlog/model/dto"
	"vista/internal/domains/shiftlog/service"
	cacheMocks "vista/shared/cache/mocks"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc         service.Log
	repo        *logMocks.MockLog
	profileRepo *profileMocks.MockProfile
	cache       *cacheMocks.MockRedisCache
	publisher   *activityMocks.MockPublisher
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		repo:        logMocks.NewMockLog(ctrl),
		profileRepo: profileMocks.NewMockProfile(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		publisher:   activityMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.profileRepo, cfg, f.cache, mocks.NewOtel(), f.publisher)

	return f
}

func (f fixture) allowCacheWrites() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func viewerContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestLogService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantRead  []bool
	}{
		{
			name: "newest first with read state for viewer",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Log, error) {
						assert.Equal(t, "logs.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return []model.Log{
							{ID: "l2", Title: "Boiler", ReadBy: pq.StringArray{"u1"}},
							{ID: "l1", Title: "Late arrival", ReadBy: pq.StringArray{"u2"}},
						}, nil
					})

				f.allowCacheWrites()
			},
			wantRead: []bool{true, false},
		},
		{
			name: "repository error",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))

				f.allowCacheWrites()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.GetAll(viewerContext("u1"), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Logs, len(tt.wantRead))

			for i, want := range tt.wantRead {
				assert.Equal(t, want, res.Logs[i].IsRead)
			}
		})
	}
}

func TestLogService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	req := dto.CreateLogRequest{Title: "Boiler", Message: "Pressure low on floor 3"}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "stamps author snapshot",
			setupMock: func() {
				f.profileRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(profileModel.Profile{ID: "u1", FirstName: "Ana", LastName: "Lopez", Role: constant.RoleMaintenance}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry model.Log) error {
						assert.Equal(t, "Ana Lopez", entry.AuthorName)
						assert.Equal(t, constant.RoleMaintenance, entry.AuthorRole)
						assert.Empty(t, entry.ReadBy)

						return nil
					})

				f.publisher.EXPECT().
					Publish(gomock.Any(), activityModel.EventLogCreated, "u1", gomock.Any())

				f.allowCacheWrites()
			},
		},
		{
			name: "author profile missing",
			setupMock: func() {
				f.profileRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(profileModel.Profile{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			setupMock: func() {
				f.profileRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(profileModel.Profile{ID: "u1", FirstName: "Ana"}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(viewerContext("u1"), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Boiler", res.Title)
			assert.False(t, res.IsRead)
		})
	}
}

func TestLogService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "adds viewer",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Log{ID: "l1", ReadBy: pq.StringArray{"u2"}}, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, pq.StringArray{"u2", "u1"}, fields[model.FieldReadBy])

						return nil
					})

				f.allowCacheWrites()
			},
		},
		{
			name: "already read is a no-op",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Log{ID: "l1", ReadBy: pq.StringArray{"u1"}}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Log{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.MarkRead(viewerContext("u1"), "l1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestLogService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "deleted",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Log{ID: "l1"}, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				f.allowCacheWrites()
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Log{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(viewerContext("boss"), "l1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAddReader(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, service.AddReader([]string{"a", "a", "b"}, "b"))
	assert.Equal(t, []string{"x"}, service.AddReader(nil, "x"))
	assert.Equal(t, []string{"a"}, service.AddReader([]string{"a", ""}, ""))
}
