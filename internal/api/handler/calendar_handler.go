package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/service"
	"eduboard/backend/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	calSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calSvc: calSvc}
}

// GetCalendar 日历视图（day / week / month）
// GET /api/v1/calendar?view=week&date=2024-03-13
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	userID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var query dto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.calSvc.GetCalendar(c.Request.Context(), userID, role, &query)
	if err != nil {
		if errors.Is(err, service.ErrBadDate) {
			response.BadRequest(c, 16001, "日期格式无效，应为 YYYY-MM-DD")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetUpcoming 未来 7 天内最近的事件
// GET /api/v1/calendar/upcoming
func (h *CalendarHandler) GetUpcoming(c *gin.Context) {
	userID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	events, err := h.calSvc.GetUpcoming(c.Request.Context(), userID, role)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, events)
}

// GetWeekStats 本周统计
// GET /api/v1/calendar/stats
func (h *CalendarHandler) GetWeekStats(c *gin.Context) {
	userID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	stats, err := h.calSvc.GetWeekStats(c.Request.Context(), userID, role)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// ── 用户自建事件 ──

// CreateEvent 创建自建事件
// POST /api/v1/calendar/events
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ev, err := h.calSvc.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadEventTime):
			response.BadRequest(c, 17001, "事件时间格式无效，应为 RFC3339")
		case errors.Is(err, service.ErrEventEndNotAfter):
			response.BadRequest(c, 17002, "结束时间必须晚于开始时间")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, ev)
}

// UpdateEvent 更新自建事件（属主）
// PUT /api/v1/calendar/events/:id
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ev, err := h.calSvc.UpdateEvent(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 17003, "事件不存在")
		case errors.Is(err, service.ErrNotEventOwner):
			response.Forbidden(c, 17004, "只能操作自己的事件")
		case errors.Is(err, service.ErrBadEventTime):
			response.BadRequest(c, 17001, "事件时间格式无效，应为 RFC3339")
		case errors.Is(err, service.ErrEventEndNotAfter):
			response.BadRequest(c, 17002, "结束时间必须晚于开始时间")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, ev)
}

// DeleteEvent 删除自建事件（属主）
// DELETE /api/v1/calendar/events/:id
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.calSvc.DeleteEvent(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 17003, "事件不存在")
		case errors.Is(err, service.ErrNotEventOwner):
			response.Forbidden(c, 17004, "只能操作自己的事件")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/calendar_handler.go
