package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
)

// UserService handles profile management and the back-office user listing
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Get returns one user's public info
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	info := NewUserInfo(user)
	return &info, nil
}

// UpdateProfile applies the user's own edits
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	user.Touch()

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// List returns a page of users for the back office
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	filter.Normalize()

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, NewUserInfo(&users[i]))
	}
	page := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AdminUpdate applies super-admin edits: role changes and activation toggles
func (s *UserService) AdminUpdate(ctx context.Context, actor *identity.User, id uuid.UUID, input AdminUpdateUserInput) (*UserInfo, error) {
	if actor.Role != identity.RoleSuperAdmin {
		return nil, shared.NewDomainError("FORBIDDEN", "Only a super admin can manage users")
	}
	if actor.ID == id && input.IsActive != nil && !*input.IsActive {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.Role != nil {
		if err := user.ChangeRole(identity.Role(*input.Role)); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		if *input.IsActive {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated by admin",
		zap.String("actor_id", actor.ID.String()),
		zap.String("user_id", user.ID.String()))
	info := NewUserInfo(user)
	return &info, nil
}
