package handler

import (
	"context"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/google/uuid"
)

// MockDiaryService is a mock implementation of DiaryService
type MockDiaryService struct {
	createFunc    func(ctx context.Context, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error)
	replaceFunc   func(ctx context.Context, logDate string, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error)
	getByDateFunc func(ctx context.Context, logDate string) (*domain.DiaryEntryResponse, error)
	listFunc      func(ctx context.Context, filter domain.DiaryFilter) (*domain.DiaryListResponse, error)
}

func (m *MockDiaryService) Create(ctx context.Context, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.DiaryEntryResponse{ID: uuid.New(), LogDate: req.LogDate}, nil
}

func (m *MockDiaryService) Replace(ctx context.Context, logDate string, req *domain.UpsertDiaryEntryRequest) (*domain.DiaryEntryResponse, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, logDate, req)
	}
	return &domain.DiaryEntryResponse{ID: uuid.New(), LogDate: logDate}, nil
}

func (m *MockDiaryService) GetByDate(ctx context.Context, logDate string) (*domain.DiaryEntryResponse, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, logDate)
	}
	return nil, domain.ErrNotFound
}

func (m *MockDiaryService) List(ctx context.Context, filter domain.DiaryFilter) (*domain.DiaryListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.DiaryListResponse{
		Data:       []domain.DiaryEntryResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	nightsFunc  func(ctx context.Context, from, to string) ([]domain.NightMetrics, error)
	rollingFunc func(ctx context.Context, today string, windowDays int) (*domain.RollingReport, error)
}

func (m *MockMetricsService) Nights(ctx context.Context, from, to string) ([]domain.NightMetrics, error) {
	if m.nightsFunc != nil {
		return m.nightsFunc(ctx, from, to)
	}
	return []domain.NightMetrics{}, nil
}

func (m *MockMetricsService) Rolling(ctx context.Context, today string, windowDays int) (*domain.RollingReport, error) {
	if m.rollingFunc != nil {
		return m.rollingFunc(ctx, today, windowDays)
	}
	return &domain.RollingReport{To: today, WindowDays: windowDays, Insufficient: true}, nil
}

// MockPlanService is a mock implementation of PlanService
type MockPlanService struct {
	proposalFunc func(ctx context.Context) (*domain.ProposalResponse, error)
	applyFunc    func(ctx context.Context, req *domain.ApplyWindowRequest) (*domain.WindowRecordResponse, error)
	historyFunc  func(ctx context.Context) *domain.WindowHistoryResponse
	editFunc     func(ctx context.Context, effectiveFrom string, req *domain.EditWindowRequest) (*domain.WindowRecordResponse, error)
	removeFunc   func(ctx context.Context, effectiveFrom string) error
	activeFunc   func(ctx context.Context, date string) *domain.ActiveWindowResponse
}

func (m *MockPlanService) Proposal(ctx context.Context) (*domain.ProposalResponse, error) {
	if m.proposalFunc != nil {
		return m.proposalFunc(ctx)
	}
	return &domain.ProposalResponse{}, nil
}

func (m *MockPlanService) Apply(ctx context.Context, req *domain.ApplyWindowRequest) (*domain.WindowRecordResponse, error) {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, req)
	}
	return &domain.WindowRecordResponse{
		EffectiveFrom: req.EffectiveFrom,
		TargetWake:    req.TargetWake,
		WindowMinutes: req.WindowMinutes,
	}, nil
}

func (m *MockPlanService) History(ctx context.Context) *domain.WindowHistoryResponse {
	if m.historyFunc != nil {
		return m.historyFunc(ctx)
	}
	return &domain.WindowHistoryResponse{Data: []domain.WindowRecordResponse{}}
}

func (m *MockPlanService) Edit(ctx context.Context, effectiveFrom string, req *domain.EditWindowRequest) (*domain.WindowRecordResponse, error) {
	if m.editFunc != nil {
		return m.editFunc(ctx, effectiveFrom, req)
	}
	return &domain.WindowRecordResponse{
		EffectiveFrom: effectiveFrom,
		TargetWake:    req.TargetWake,
		WindowMinutes: req.WindowMinutes,
	}, nil
}

func (m *MockPlanService) Remove(ctx context.Context, effectiveFrom string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, effectiveFrom)
	}
	return nil
}

func (m *MockPlanService) ActiveOn(ctx context.Context, date string) *domain.ActiveWindowResponse {
	if m.activeFunc != nil {
		return m.activeFunc(ctx, date)
	}
	return &domain.ActiveWindowResponse{Date: date}
}
