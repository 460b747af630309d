package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/ledger"
	"github.com/cbti-tools/sleep-diary/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// SE thresholds for the adjustment rules, in percent.
const (
	seIncreaseAbove = 85.0
	seDecreaseBelow = 80.0
)

// PlanService owns the window history ledger and the adjustment
// engine. The in-memory ledger is the source of truth for the session;
// persistence runs after each committed mutation, and a persistence
// failure is surfaced without discarding the validated in-memory state.
type PlanService interface {
	Proposal(ctx context.Context) (*domain.ProposalResponse, error)
	Apply(ctx context.Context, req *domain.ApplyWindowRequest) (*domain.WindowRecordResponse, error)
	History(ctx context.Context) *domain.WindowHistoryResponse
	Edit(ctx context.Context, effectiveFrom string, req *domain.EditWindowRequest) (*domain.WindowRecordResponse, error)
	Remove(ctx context.Context, effectiveFrom string) error
	ActiveOn(ctx context.Context, date string) *domain.ActiveWindowResponse
}

type planService struct {
	ledger     *ledger.Ledger
	windowRepo repository.WindowRepository
	metrics    MetricsService
	windowDays int
	today      func() string
}

// NewPlanService wires the ledger loaded at startup to the rolling
// aggregator. today is injectable for tests; pass nil for wall clock.
func NewPlanService(l *ledger.Ledger, windowRepo repository.WindowRepository, metrics MetricsService, windowDays int, today func() string) PlanService {
	if today == nil {
		today = func() string { return time.Now().Format(domain.DateLayout) }
	}
	if windowDays <= 0 {
		windowDays = DefaultRollingWindowDays
	}
	return &planService{
		ledger:     l,
		windowRepo: windowRepo,
		metrics:    metrics,
		windowDays: windowDays,
		today:      today,
	}
}

func (s *planService) Proposal(ctx context.Context) (*domain.ProposalResponse, error) {
	tracer := otel.Tracer("sleep-diary-api/plan")
	ctx, span := tracer.Start(ctx, "PlanService.Proposal")
	defer span.End()

	today := s.today()
	rolling, err := s.metrics.Rolling(ctx, today, s.windowDays)
	if err != nil {
		return nil, err
	}

	active, _ := s.ledger.ActiveOn(today)
	proposal := ProposeAdjustment(*rolling, active.Window())

	span.SetAttributes(
		attribute.String("proposal.rationale", proposal.Rationale),
		attribute.Bool("proposal.changed", proposal.Changed),
	)

	return &domain.ProposalResponse{Rolling: *rolling, Proposal: proposal}, nil
}

// ProposeAdjustment applies the fixed-priority CBT-i rule set to the
// rolling average and the currently active window. Pure decision
// function: no I/O, no errors, bit-identical output for identical
// input. The target wake time is never altered, only the duration.
func ProposeAdjustment(rolling domain.RollingReport, current domain.SleepWindow) domain.WindowProposal {
	proposal := domain.WindowProposal{
		Current:  current,
		Proposed: current,
	}

	switch {
	case rolling.Insufficient:
		proposal.Rationale = domain.RationaleInsufficient
	case rolling.AverageSE > seIncreaseAbove:
		proposal.Proposed.WindowMinutes = current.WindowMinutes + domain.WindowStepMinutes
		proposal.Rationale = domain.RationaleIncrease
		proposal.Changed = true
	case rolling.AverageSE < seDecreaseBelow:
		if current.WindowMinutes <= domain.MinWindowMinutes {
			proposal.Rationale = domain.RationaleAtMinimum
		} else {
			proposal.Proposed.WindowMinutes = current.WindowMinutes - domain.WindowStepMinutes
			proposal.Rationale = domain.RationaleDecrease
			proposal.Changed = true
		}
	default:
		proposal.Rationale = domain.RationaleNoChange
	}

	proposal.ProposedBedtime = proposal.Proposed.PrescribedBedtime()
	return proposal
}

func (s *planService) Apply(ctx context.Context, req *domain.ApplyWindowRequest) (*domain.WindowRecordResponse, error) {
	rationale := req.Rationale
	if rationale == "" {
		rationale = domain.RationaleManualEdit
	}

	record := domain.WindowHistoryRecord{
		EffectiveFrom: req.EffectiveFrom,
		TargetWake:    req.TargetWake,
		WindowMinutes: req.WindowMinutes,
		Rationale:     rationale,
	}

	if err := s.ledger.Append(record); err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	resp := record.ToResponse()
	return &resp, nil
}

func (s *planService) History(ctx context.Context) *domain.WindowHistoryResponse {
	records := s.ledger.Records()
	resp := &domain.WindowHistoryResponse{
		Data: make([]domain.WindowRecordResponse, len(records)),
	}
	for i, r := range records {
		resp.Data[i] = r.ToResponse()
	}
	return resp
}

func (s *planService) Edit(ctx context.Context, effectiveFrom string, req *domain.EditWindowRequest) (*domain.WindowRecordResponse, error) {
	window := domain.SleepWindow{TargetWake: req.TargetWake, WindowMinutes: req.WindowMinutes}
	if err := s.ledger.Edit(effectiveFrom, window); err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	record, _ := s.ledger.ActiveOn(effectiveFrom)
	resp := record.ToResponse()
	return &resp, nil
}

func (s *planService) Remove(ctx context.Context, effectiveFrom string) error {
	if err := s.ledger.Remove(effectiveFrom); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *planService) ActiveOn(ctx context.Context, date string) *domain.ActiveWindowResponse {
	record, gap := s.ledger.ActiveOn(date)
	return &domain.ActiveWindowResponse{
		Date:       date,
		Record:     record.ToResponse(),
		GapWarning: gap,
	}
}

// persist writes the committed ledger state back to the store. On
// failure the in-memory ledger remains the source of truth; the error
// is surfaced to the caller rather than rolled back.
func (s *planService) persist(ctx context.Context) error {
	if err := s.windowRepo.ReplaceAll(ctx, s.ledger.Records()); err != nil {
		return fmt.Errorf("persist window history (in-memory state retained): %w", err)
	}
	return nil
}
