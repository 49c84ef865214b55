// Package memory is an in-process document store satisfying the repository
// contracts. It backs the service when no MongoDB is configured and serves as
// the store in handler and service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/repository"
)

// Store holds the three collections in insertion order.
type Store struct {
	mu         sync.RWMutex
	users      []domain.User
	news       []domain.Article
	publishers []domain.Publisher
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Users returns the user collection view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// News returns the article collection view.
func (s *Store) News() repository.NewsRepository { return newsRepo{s} }

// Publishers returns the publisher collection view.
func (s *Store) Publishers() repository.PublisherRepository { return publisherRepo{s} }

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r userRepo) List(ctx context.Context) ([]domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.User{}, r.s.users...), nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) Count(ctx context.Context) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r userRepo) CountPremium(ctx context.Context) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if u.IsPremium {
			n++
		}
	}
	return n, nil
}

func (r userRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r userRepo) SetRole(ctx context.Context, id primitive.ObjectID, role domain.UserRole) (domain.UpdateOutcome, error) {
	return r.update(ctx, func(u *domain.User) bool { return u.ID == id }, func(u *domain.User) bool {
		changed := u.Role != role
		u.Role = role
		return changed
	})
}

func (r userRepo) SetPremium(ctx context.Context, email string) (domain.UpdateOutcome, error) {
	return r.update(ctx, func(u *domain.User) bool { return u.Email == email }, func(u *domain.User) bool {
		changed := !u.IsPremium
		u.IsPremium = true
		return changed
	})
}

// update applies fn to the first matching user, mirroring updateOne.
func (r userRepo) update(ctx context.Context, match func(*domain.User) bool, fn func(*domain.User) bool) (domain.UpdateOutcome, error) {
	if err := checkCtx(ctx); err != nil {
		return domain.UpdateOutcome{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if match(&r.s.users[i]) {
			out := domain.UpdateOutcome{MatchedCount: 1}
			if fn(&r.s.users[i]) {
				out.ModifiedCount = 1
			}
			return out, nil
		}
	}
	return domain.UpdateOutcome{}, nil
}

type newsRepo struct{ s *Store }

func (r newsRepo) Create(ctx context.Context, article *domain.Article) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	r.s.news = append(r.s.news, *article)
	return nil
}

func (r newsRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	result := []domain.Article{}
	for _, a := range r.s.news {
		if matches(a, filter) {
			result = append(result, a)
		}
	}
	r.s.mu.RUnlock()

	if filter.SortByViewsDesc {
		sort.SliceStable(result, func(i, j int) bool { return result[i].Views > result[j].Views })
	}
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func matches(a domain.Article, f repository.ArticleFilter) bool {
	if f.AuthorEmail != "" && a.AuthorEmail != f.AuthorEmail {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.SubscriptionOnly && !a.Subscription {
		return false
	}
	if f.TitleContains != "" && !containsFold(a.Title, f.TitleContains) {
		return false
	}
	if f.PublisherContains != "" && !containsFold(a.Publisher, f.PublisherContains) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r newsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Article, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.news {
		if a.ID == id {
			found := a
			found.Tags = append([]string{}, a.Tags...)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r newsRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.update(ctx, id, func(a *domain.Article) bool {
		a.Views++
		return true
	})
	return err
}

func (r newsRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.ArticleStatus) (domain.UpdateOutcome, error) {
	return r.update(ctx, id, func(a *domain.Article) bool {
		changed := a.Status != status
		a.Status = status
		return changed
	})
}

func (r newsRepo) MarkPremium(ctx context.Context, id primitive.ObjectID) (domain.UpdateOutcome, error) {
	return r.update(ctx, id, func(a *domain.Article) bool {
		changed := !a.Subscription
		a.Subscription = true
		return changed
	})
}

func (r newsRepo) Update(ctx context.Context, id primitive.ObjectID, edit domain.ArticleEdit) (domain.UpdateOutcome, error) {
	return r.update(ctx, id, func(a *domain.Article) bool {
		tags := edit.Tags
		if tags == nil {
			tags = []string{}
		}
		changed := a.Title != edit.Title || a.Publisher != edit.Publisher ||
			a.Description != edit.Description || a.Image != edit.Image ||
			strings.Join(a.Tags, "\x00") != strings.Join(tags, "\x00")
		a.Title = edit.Title
		a.Tags = append([]string{}, tags...)
		a.Publisher = edit.Publisher
		a.Description = edit.Description
		a.Image = edit.Image
		return changed
	})
}

func (r newsRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, a := range r.s.news {
		if a.ID == id {
			r.s.news = append(r.s.news[:i], r.s.news[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r newsRepo) update(ctx context.Context, id primitive.ObjectID, fn func(*domain.Article) bool) (domain.UpdateOutcome, error) {
	if err := checkCtx(ctx); err != nil {
		return domain.UpdateOutcome{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.news {
		if r.s.news[i].ID == id {
			out := domain.UpdateOutcome{MatchedCount: 1}
			if fn(&r.s.news[i]) {
				out.ModifiedCount = 1
			}
			return out, nil
		}
	}
	return domain.UpdateOutcome{}, nil
}

func (r newsRepo) CountByPublisher(ctx context.Context, publisher string) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, a := range r.s.news {
		if a.Publisher == publisher {
			n++
		}
	}
	return n, nil
}

type publisherRepo struct{ s *Store }

func (r publisherRepo) Create(ctx context.Context, publisher *domain.Publisher) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if publisher.ID.IsZero() {
		publisher.ID = primitive.NewObjectID()
	}
	if publisher.CreatedAt.IsZero() {
		publisher.CreatedAt = time.Now().UTC()
	}
	r.s.publishers = append(r.s.publishers, *publisher)
	return nil
}

func (r publisherRepo) List(ctx context.Context) ([]domain.Publisher, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Publisher{}, r.s.publishers...), nil
}

func (r publisherRepo) IncrementTotalNews(ctx context.Context, name string) (domain.UpdateOutcome, error) {
	if err := checkCtx(ctx); err != nil {
		return domain.UpdateOutcome{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.publishers {
		if r.s.publishers[i].Name == name {
			r.s.publishers[i].TotalNews++
			return domain.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return domain.UpdateOutcome{}, nil
}

func (r publisherRepo) SetTotalNews(ctx context.Context, name string, total int64) (domain.UpdateOutcome, error) {
	if err := checkCtx(ctx); err != nil {
		return domain.UpdateOutcome{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.publishers {
		if r.s.publishers[i].Name == name {
			out := domain.UpdateOutcome{MatchedCount: 1}
			if r.s.publishers[i].TotalNews != total {
				r.s.publishers[i].TotalNews = total
				out.ModifiedCount = 1
			}
			return out, nil
		}
	}
	return domain.UpdateOutcome{}, nil
}
