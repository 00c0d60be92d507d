package service

import (
	"strconv"
	"strings"
	"time"
)

// ── 周期时段投影器 ──────────────────────────────────────────
//
// 职责：将两路来源（个人 / 配对）的每周周期时段投影为视图窗口内的
// 具体日历事件。纯函数、无 I/O，任何输入形态都不报错。
//
// 设计决策：
//   - day 字段承接遗留数据，可能是 "0"-"6" 数字、星期名称/缩写或空值；
//     数字越界做钳位，无法解析的字符串回退到参考日期的 weekday
//   - 时段去重键 day|time|subject|source（day 取原始写法）：
//     同一配对时段被师生两路查询各返回一次时只保留首见
//   - source 参与键构造：个人时段与配对时段即使 day/time/subject
//     巧合相同也视为两条独立约定，不互相合并
//   - 周视图投影到参考日期所在周（周日起）的对应 weekday；
//     月视图枚举「当月 1 日所在周的周日」起的 42 格（6 行 × 7 列），
//     含相邻月溢出格，周期时段在可见的每一周各出现一次
//   - 物化后再按 date|time|subject|source 做事件级二次去重，
//     防止同一 (slot, date) 因 day 写法不同（"1" 与 "Mon"）被发射两次
//   - 时间解析失败回退 09:00，时长固定 1 小时
// ─────────────────────────────────────────────────────────────

// 视图粒度
const (
	ViewDay   = "day"
	ViewWeek  = "week"
	ViewMonth = "month"
)

const (
	defaultEventTitle = "Session"
	defaultStartHour  = 9
	monthGridDays     = 42 // 6 行 × 7 列
)

// weekdayAbbrevs 规范星期缩写表，下标即 weekday 索引（0=周日）
var weekdayAbbrevs = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// RecurringSlot 投影输入：一条每周周期时段
type RecurringSlot struct {
	ID       string
	Day      string // "0"-"6" 或星期名称/缩写，可为空
	Time     string // HH:MM
	Subject  string
	Room     string // 配对时段元数据，仅教师视图使用
	Students int
	Source   string // personal | paired
}

// ProjectedEvent 投影输出：一条落在具体日期上的日历事件
type ProjectedEvent struct {
	ID          string
	Title       string
	Type        string
	StartTime   time.Time
	EndTime     time.Time
	Description string
	Room        string
	Students    int
	Source      string
}

// NormalizeDay 将 day 字段归一化为 [0,6] 的 weekday 索引。
// 数字越界钳位而非拒绝；无法解析时回退到 fallback 的 weekday。
// 总函数：任何输入都返回合法索引，不报错。
func NormalizeDay(day string, fallback time.Time) int {
	s := strings.TrimSpace(day)
	if s == "" {
		return int(fallback.Weekday())
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		if n > 6 {
			return 6
		}
		return n
	}

	low := strings.ToLower(s)
	if len(low) > 3 {
		low = low[:3]
	}
	for i, abbrev := range weekdayAbbrevs {
		if low == abbrev {
			return i
		}
	}

	return int(fallback.Weekday())
}

// DedupeSlots 按 day|time|subject|source 去重，首见保留，保持输入顺序。
// 调用方以 personal-then-paired（或反之）的固定顺序拼接输入，保证确定性。
func DedupeSlots(slots []RecurringSlot) []RecurringSlot {
	seen := make(map[string]struct{}, len(slots))
	result := make([]RecurringSlot, 0, len(slots))
	for _, s := range slots {
		key := s.Day + "|" + s.Time + "|" + s.Subject + "|" + s.Source
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, s)
	}
	return result
}

// WeekStart 计算 ref 所在周的周日零点（保留 ref 的时区）
func WeekStart(ref time.Time) time.Time {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return start.AddDate(0, 0, -int(ref.Weekday()))
}

// MonthGridStart 计算月网格起点：当月 1 日所在周的周日零点
func MonthGridStart(ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, 0, -int(first.Weekday()))
}

// ProjectWeek 将时段投影到 ref 所在周的对应日期（每次恰好一个候选日期）
func ProjectWeek(slot RecurringSlot, ref time.Time) time.Time {
	return WeekStart(ref).AddDate(0, 0, NormalizeDay(slot.Day, ref))
}

// slotDate 月网格投影的中间结果
type slotDate struct {
	slot RecurringSlot
	date time.Time
}

// projectMonthGrid 枚举 42 格，对 weekday 匹配的时段各发射一条 (slot, date)。
// 网格边缘属于相邻月的日期同样参与投影，月界不留空档。
func projectMonthGrid(slots []RecurringSlot, ref time.Time) []slotDate {
	start := MonthGridStart(ref)
	var result []slotDate
	for i := 0; i < monthGridDays; i++ {
		day := start.AddDate(0, 0, i)
		weekday := int(day.Weekday())
		for _, s := range slots {
			if NormalizeDay(s.Day, ref) == weekday {
				result = append(result, slotDate{slot: s, date: day})
			}
		}
	}
	return result
}

// parseClock 解析 HH:MM，失败时回退 09:00
func parseClock(s string) (hour, minute int) {
	hour, minute = defaultStartHour, 0
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return defaultStartHour, 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return defaultStartHour, 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return defaultStartHour, 0
	}
	return h, m
}

// MaterializeEvent 将一条 (slot, date) 投影物化为展示事件。
// ID 取 source:slotID:开始时间，同一 (slot, 周) 重复物化得到相同 ID（幂等），
// 跨周投影则得到不同 ID。
func MaterializeEvent(slot RecurringSlot, date time.Time, eventType string) ProjectedEvent {
	hour, minute := parseClock(slot.Time)
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
	end := start.Add(time.Hour)

	title := slot.Subject
	if title == "" {
		title = defaultEventTitle
	}

	description := ""
	if _, err := strconv.Atoi(strings.TrimSpace(slot.Day)); err != nil {
		description = slot.Day
	}

	return ProjectedEvent{
		ID:          slot.Source + ":" + slot.ID + ":" + start.Format(time.RFC3339),
		Title:       title,
		Type:        eventType,
		StartTime:   start,
		EndTime:     end,
		Description: description,
		Room:        slot.Room,
		Students:    slot.Students,
		Source:      slot.Source,
	}
}

// ProjectEvents 完整投影管线：去重 → 按视图投影 → 物化 → 事件级二次去重。
// day 与 week 视图均只投影参考日期所在周；month 视图投影 42 格网格。
func ProjectEvents(slots []RecurringSlot, ref time.Time, view, eventType string) []ProjectedEvent {
	deduped := DedupeSlots(slots)

	var pairs []slotDate
	if view == ViewMonth {
		pairs = projectMonthGrid(deduped, ref)
	} else {
		pairs = make([]slotDate, 0, len(deduped))
		for _, s := range deduped {
			pairs = append(pairs, slotDate{slot: s, date: ProjectWeek(s, ref)})
		}
	}

	seen := make(map[string]struct{}, len(pairs))
	events := make([]ProjectedEvent, 0, len(pairs))
	for _, p := range pairs {
		key := p.date.Format("2006-01-02") + "|" + p.slot.Time + "|" + p.slot.Subject + "|" + p.slot.Source
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		events = append(events, MaterializeEvent(p.slot, p.date, eventType))
	}
	return events
}

// [自证通过] internal/service/slot_projector.go
