package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/repository"
)

// UserService coordinates reader account workflows.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// List returns every user record.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Stats counts total and premium users concurrently.
func (s *UserService) Stats(ctx context.Context) (domain.UserStats, error) {
	var total, premium int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		premium, err = s.users.CountPremium(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.UserStats{}, err
	}
	return domain.UserStats{
		TotalUsers:   total,
		PremiumUsers: premium,
		NormalUsers:  total - premium,
	}, nil
}

// FindByEmail returns the user, or nil when no user has that email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// IsAdmin reports whether the stored user with this email has the admin role.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// Register inserts a user unless the email is taken. It reports false,
// without error, when the email already exists. The lookup covers stores
// without a unique email index; the index closes the race between two
// concurrent inserts. Role and premium status are never taken from the caller.
func (s *UserService) Register(ctx context.Context, user *domain.User) (bool, error) {
	user.Role = ""
	user.IsPremium = false
	existing, err := s.FindByEmail(ctx, user.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, actor *domain.Principal, id primitive.ObjectID) (int64, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventUserDeleted,
			DocumentID: id,
			Actor:      actorOf(actor),
		})
	}
	return deleted, nil
}

// PromoteToAdmin sets the admin role on the user.
func (s *UserService) PromoteToAdmin(ctx context.Context, actor *domain.Principal, id primitive.ObjectID) (domain.UpdateOutcome, error) {
	out, err := s.users.SetRole(ctx, id, domain.UserRoleAdmin)
	if err != nil {
		return domain.UpdateOutcome{}, err
	}
	if out.ModifiedCount > 0 {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventUserPromoted,
			DocumentID: id,
			Actor:      actorOf(actor),
		})
	}
	return out, nil
}

// MarkPremium records a completed subscription payment.
func (s *UserService) MarkPremium(ctx context.Context, email string) (domain.UpdateOutcome, error) {
	return s.users.SetPremium(ctx, email)
}
