package services

import (
	"context"
	"log"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/repository"
	"timeclock/internal/repository/models"
	"timeclock/internal/validation"
)

const dayKeyFormat = "2006-01-02"

// SummaryCacheStore is the read/write surface of the daily summary cache.
// Implemented by cache.SummaryCache; nil disables caching.
type SummaryCacheStore interface {
	Get(ctx context.Context, userID, day string) (*domain.DailySummary, error)
	Set(ctx context.Context, userID, day string, summary *domain.DailySummary) error
}

// summaryServiceImpl implements the SummaryService interface
type summaryServiceImpl struct {
	repo      repository.Repository
	clock     domain.Clock
	loc       *time.Location
	mapper    *domain.Mapper
	validator *validation.TimeLogValidator
	cache     SummaryCacheStore // may be nil
}

// NewSummaryService creates a new SummaryService instance. Day boundaries
// are computed in loc; cache may be nil.
func NewSummaryService(repo repository.Repository, clock domain.Clock, loc *time.Location, cache SummaryCacheStore) SummaryService {
	if loc == nil {
		loc = time.Local
	}
	return &summaryServiceImpl{
		repo:      repo,
		clock:     clock,
		loc:       loc,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimeLogValidator(),
		cache:     cache,
	}
}

// GetDailySummary aggregates one day of the user's time logs
func (s *summaryServiceImpl) GetDailySummary(ctx context.Context, userID string, day *time.Time) (*domain.DailySummary, error) {
	ref := s.clock.Now()
	target := ref
	if day != nil {
		target = *day
	}
	window := s.dayWindow(target)
	dayKey := window.Start.Format(dayKeyFormat)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID, dayKey)
		if err != nil {
			log.Printf("summary cache read failed for user %s: %v", userID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, hasOpen, err := s.aggregate(ctx, userID, window, ref)
	if err != nil {
		return nil, err
	}

	// Open logs make the response time-dependent, so only settled days are
	// cached
	if s.cache != nil && !hasOpen {
		if err := s.cache.Set(ctx, userID, dayKey, summary); err != nil {
			log.Printf("summary cache write failed for user %s: %v", userID, err)
		}
	}

	return summary, nil
}

// GetRangeSummary aggregates an arbitrary [start, end) window
func (s *summaryServiceImpl) GetRangeSummary(ctx context.Context, userID string, window TimeRange) (*domain.DailySummary, error) {
	if !window.Start.Before(window.End) {
		return nil, errors.NewValidationError("range start must be before range end", nil)
	}
	summary, _, err := s.aggregate(ctx, userID, window, s.clock.Now())
	return summary, err
}

// aggregate builds a summary over the window. Every open log is measured
// against ref so one response is internally consistent.
func (s *summaryServiceImpl) aggregate(ctx context.Context, userID string, window TimeRange, ref time.Time) (*domain.DailySummary, bool, error) {
	opts := repository.SearchOptions{
		StartTime: &window.Start,
		EndTime:   &window.End,
	}
	rows, err := s.repo.SearchTimeLogs(ctx, userID, opts)
	if err != nil {
		return nil, false, err
	}

	summary := &domain.DailySummary{
		Tasks: make(map[string]domain.TaskTimeSummary),
	}
	titles := make(map[string]*models.Task)
	hasOpen := false

	for _, row := range rows {
		logEntry := s.mapper.TimeLog.FromStorage(*row)
		if logEntry.IsOpen() {
			hasOpen = true
		}
		seconds := logEntry.DurationSeconds(ref)

		taskSummary, exists := summary.Tasks[logEntry.TaskID]
		if !exists {
			taskSummary = s.newTaskSummary(ctx, userID, logEntry.TaskID, titles)
		}
		taskSummary.TotalTime += seconds
		taskSummary.Logs = append(taskSummary.Logs, domain.LogSummary{
			StartTime: logEntry.StartTime,
			EndTime:   logEntry.EndTime,
			Duration:  seconds,
		})
		summary.Tasks[logEntry.TaskID] = taskSummary

		summary.TotalTime += seconds
	}

	summary.TaskCount = len(summary.Tasks)

	completed, err := s.repo.CountCompletedTasks(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, false, err
	}
	summary.CompletedTasks = completed

	return summary, hasOpen, nil
}

// newTaskSummary resolves the task title at summary time. A deleted task
// keeps contributing time but its title is reported unavailable.
func (s *summaryServiceImpl) newTaskSummary(ctx context.Context, userID, taskID string, titles map[string]*models.Task) domain.TaskTimeSummary {
	taskRow, cached := titles[taskID]
	if !cached {
		row, err := s.repo.GetTask(ctx, userID, taskID)
		if err == nil {
			taskRow = row
		}
		titles[taskID] = taskRow
	}

	if taskRow == nil {
		return domain.TaskTimeSummary{TitleAvailable: false}
	}
	return domain.TaskTimeSummary{
		Title:          taskRow.Title,
		TitleAvailable: true,
	}
}

// ListTimeLogs returns the user's logs matching the filter, most recent first
func (s *summaryServiceImpl) ListTimeLogs(ctx context.Context, userID string, filter domain.TimeLogFilter) ([]*domain.TimeLogView, error) {
	if err := s.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}

	opts := repository.SearchOptions{
		StartTime: filter.StartDate,
		EndTime:   filter.EndDate,
		TaskID:    filter.TaskID,
	}
	rows, err := s.repo.SearchTimeLogs(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	ref := s.clock.Now()
	titles := make(map[string]*models.Task)
	views := make([]*domain.TimeLogView, 0, len(rows))

	for _, row := range rows {
		logEntry := s.mapper.TimeLog.FromStorage(*row)

		taskRow, cached := titles[logEntry.TaskID]
		if !cached {
			if found, lookupErr := s.repo.GetTask(ctx, userID, logEntry.TaskID); lookupErr == nil {
				taskRow = found
			}
			titles[logEntry.TaskID] = taskRow
		}

		view := &domain.TimeLogView{
			ID:        logEntry.ID,
			Task:      domain.TaskRef{ID: logEntry.TaskID},
			StartTime: logEntry.StartTime,
			EndTime:   logEntry.EndTime,
		}
		if taskRow != nil {
			view.Task.Title = taskRow.Title
		}

		if logEntry.IsOpen() {
			view.FormattedDuration = InProgressMarker
		} else {
			seconds := logEntry.DurationSeconds(ref)
			view.Duration = &seconds
			view.FormattedDuration = FormatDuration(seconds)
		}

		views = append(views, view)
	}

	return views, nil
}

// dayWindow returns the [midnight, midnight+24h) window containing t in the
// service's time zone
func (s *summaryServiceImpl) dayWindow(t time.Time) TimeRange {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return TimeRange{
		Start: start,
		End:   start.Add(24 * time.Hour),
	}
}
