package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eduboard/backend/config"
	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/model"
	"eduboard/backend/internal/repository"
)

var (
	ErrBadDate          = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrEventNotFound    = errors.New("事件不存在")
	ErrNotEventOwner    = errors.New("只能操作自己的事件")
	ErrBadEventTime     = errors.New("事件时间无效")
	ErrEventEndNotAfter = errors.New("结束时间必须晚于开始时间")
)

const upcomingLimit = 5

// CalendarService 日历业务接口：周期时段投影 + 用户自建事件合并
type CalendarService interface {
	GetCalendar(ctx context.Context, userID, role string, query *dto.CalendarQuery) (*dto.CalendarResponse, error)
	// GetUpcoming 未来 7 天内最近的若干事件，按开始时间升序
	GetUpcoming(ctx context.Context, userID, role string) ([]dto.CalendarEventResponse, error)
	GetWeekStats(ctx context.Context, userID, role string) (*dto.WeekStatsResponse, error)

	// ── 用户自建事件 ──
	CreateEvent(ctx context.Context, ownerID string, req *dto.CreateUserEventRequest) (*dto.CalendarEventResponse, error)
	UpdateEvent(ctx context.Context, id, ownerID string, req *dto.UpdateUserEventRequest) (*dto.CalendarEventResponse, error)
	DeleteEvent(ctx context.Context, id, ownerID string) error
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例。
// 投影时区来自配置，Load 阶段已校验可加载。
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &calendarService{
		cfg:    cfg,
		repo:   repo,
		loc:    loc,
		logger: logger,
	}
}

func (s *calendarService) GetCalendar(ctx context.Context, userID, role string, query *dto.CalendarQuery) (*dto.CalendarResponse, error) {
	view := query.View
	if view == "" {
		view = ViewWeek
	}

	ref, err := s.parseRefDate(query.Date)
	if err != nil {
		return nil, err
	}

	events, err := s.buildEvents(ctx, userID, role, view, ref)
	if err != nil {
		return nil, err
	}

	return &dto.CalendarResponse{
		View:   view,
		Date:   ref.Format("2006-01-02"),
		Events: events,
	}, nil
}

func (s *calendarService) GetUpcoming(ctx context.Context, userID, role string) ([]dto.CalendarEventResponse, error) {
	return s.upcomingFrom(ctx, userID, role, time.Now().In(s.loc))
}

// upcomingFrom 返回 [now, now+7d) 窗口内最近的若干事件，按开始时间升序
func (s *calendarService) upcomingFrom(ctx context.Context, userID, role string, now time.Time) ([]dto.CalendarEventResponse, error) {
	windowEnd := now.AddDate(0, 0, 7)

	slots, err := collectSlots(ctx, s.repo, userID, role)
	if err != nil {
		return nil, err
	}
	eventType := roleEventType(role)

	// 7 天窗口可能跨周界，对本周与下周各投影一次后过滤
	projected := ProjectEvents(slots, now, ViewWeek, eventType)
	projected = append(projected, ProjectEvents(slots, windowEnd, ViewWeek, eventType)...)

	events := make([]dto.CalendarEventResponse, 0, len(projected))
	seen := make(map[string]struct{}, len(projected))
	for _, ev := range projected {
		if ev.StartTime.Before(now) || !ev.StartTime.Before(windowEnd) {
			continue
		}
		if _, ok := seen[ev.ID]; ok {
			continue
		}
		seen[ev.ID] = struct{}{}
		events = append(events, toCalendarEventResponse(ev))
	}

	userEvents, err := s.repo.UserEvent.ListByOwnerBetween(ctx, userID, now, windowEnd)
	if err != nil {
		return nil, err
	}
	for i := range userEvents {
		events = append(events, toUserEventResponse(&userEvents[i]))
	}

	sortEvents(events)
	if len(events) > upcomingLimit {
		events = events[:upcomingLimit]
	}
	return events, nil
}

func (s *calendarService) GetWeekStats(ctx context.Context, userID, role string) (*dto.WeekStatsResponse, error) {
	now := time.Now().In(s.loc)
	events, err := s.buildEvents(ctx, userID, role, ViewWeek, now)
	if err != nil {
		return nil, err
	}

	stats := &dto.WeekStatsResponse{
		EventsByType: make(map[string]int),
	}
	var hours float64
	for _, ev := range events {
		stats.TotalEvents++
		stats.EventsByType[ev.Type]++
		hours += ev.EndTime.Sub(ev.StartTime).Hours()
	}
	stats.TotalHours = math.Round(hours*10) / 10
	return stats, nil
}

func (s *calendarService) buildEvents(ctx context.Context, userID, role, view string, ref time.Time) ([]dto.CalendarEventResponse, error) {
	slots, err := collectSlots(ctx, s.repo, userID, role)
	if err != nil {
		return nil, err
	}

	projected := ProjectEvents(slots, ref, view, roleEventType(role))
	events := make([]dto.CalendarEventResponse, 0, len(projected))
	for _, ev := range projected {
		events = append(events, toCalendarEventResponse(ev))
	}

	from, to := viewWindow(view, ref)
	userEvents, err := s.repo.UserEvent.ListByOwnerBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for i := range userEvents {
		events = append(events, toUserEventResponse(&userEvents[i]))
	}

	sortEvents(events)
	return events, nil
}

// collectSlots 汇总两路来源的周期时段，固定 personal-then-paired 顺序以保证去重确定性
func collectSlots(ctx context.Context, repo *repository.Repository, userID, role string) ([]RecurringSlot, error) {
	personal, err := repo.PersonalSlot.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	var paired []model.PairedSlot
	if role == model.RoleTeacher {
		paired, err = repo.PairedSlot.ListByTeacher(ctx, userID)
	} else {
		paired, err = repo.PairedSlot.ListByStudent(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	slots := make([]RecurringSlot, 0, len(personal)+len(paired))
	for _, p := range personal {
		slots = append(slots, RecurringSlot{
			ID:      p.SlotID,
			Day:     p.Day,
			Time:    p.Time,
			Subject: p.Subject,
			Source:  model.SlotSourcePersonal,
		})
	}
	for _, p := range paired {
		slots = append(slots, RecurringSlot{
			ID:       p.SlotID,
			Day:      p.Day,
			Time:     p.Time,
			Subject:  p.Subject,
			Room:     p.Room,
			Students: p.Students,
			Source:   model.SlotSourcePaired,
		})
	}
	return slots, nil
}

// parseRefDate 解析参考日期，缺省为配置时区下的今天
func (s *calendarService) parseRefDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, s.loc)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// viewWindow 返回视图的用户事件查询窗口 [from, to)。
// day 与 week 视图共用所在周窗口，与投影范围一致。
func viewWindow(view string, ref time.Time) (time.Time, time.Time) {
	if view == ViewMonth {
		start := MonthGridStart(ref)
		return start, start.AddDate(0, 0, monthGridDays)
	}
	start := WeekStart(ref)
	return start, start.AddDate(0, 0, 7)
}

func roleEventType(role string) string {
	if role == model.RoleTeacher {
		return "lecture"
	}
	return "study"
}

func sortEvents(events []dto.CalendarEventResponse) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].ID < events[j].ID
	})
}

// ── 用户自建事件 ──

func (s *calendarService) CreateEvent(ctx context.Context, ownerID string, req *dto.CreateUserEventRequest) (*dto.CalendarEventResponse, error) {
	start, end, err := parseEventTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	ev := &model.UserEvent{
		OwnerID:     ownerID,
		Title:       req.Title,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
	}
	if req.Type != "" {
		ev.Type = req.Type
	}
	if req.Color != "" {
		ev.Color = req.Color
	}

	if err := s.repo.UserEvent.Create(ctx, ev); err != nil {
		s.logger.Error("创建自建事件失败", zap.Error(err))
		return nil, err
	}

	resp := toUserEventResponse(ev)
	return &resp, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, id, ownerID string, req *dto.UpdateUserEventRequest) (*dto.CalendarEventResponse, error) {
	ev, err := s.repo.UserEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if ev.OwnerID != ownerID {
		return nil, ErrNotEventOwner
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Type != nil {
		ev.Type = *req.Type
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Color != nil {
		ev.Color = *req.Color
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrBadEventTime
		}
		ev.StartTime = t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrBadEventTime
		}
		ev.EndTime = t
	}
	if !ev.EndTime.After(ev.StartTime) {
		return nil, ErrEventEndNotAfter
	}

	if err := s.repo.UserEvent.Update(ctx, ev); err != nil {
		return nil, err
	}
	resp := toUserEventResponse(ev)
	return &resp, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, id, ownerID string) error {
	ev, err := s.repo.UserEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if ev.OwnerID != ownerID {
		return ErrNotEventOwner
	}
	return s.repo.UserEvent.Delete(ctx, id)
}

func parseEventTimes(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadEventTime
	}
	end, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadEventTime
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrEventEndNotAfter
	}
	return start, end, nil
}

// ── DTO 转换 ──

func toCalendarEventResponse(ev ProjectedEvent) dto.CalendarEventResponse {
	return dto.CalendarEventResponse{
		ID:          ev.ID,
		Title:       ev.Title,
		Type:        ev.Type,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Description: ev.Description,
		Room:        ev.Room,
		Students:    ev.Students,
	}
}

func toUserEventResponse(ev *model.UserEvent) dto.CalendarEventResponse {
	return dto.CalendarEventResponse{
		ID:          ev.EventID,
		Title:       ev.Title,
		Type:        ev.Type,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Description: ev.Description,
		Color:       ev.Color,
	}
}

// [自证通过] internal/service/calendar_service.go
