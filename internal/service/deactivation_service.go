package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"peached/internal/observability"
	"peached/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DefaultPruneConcurrency bounds the friend back-reference fan-out.
const DefaultPruneConcurrency = 8

// DeactivationResult summarizes one completed deactivation.
type DeactivationResult struct {
	PostsDeleted  int64 `json:"posts_deleted"`
	PruneFailures int   `json:"prune_failures"`
}

// DeactivationService retires identities. A deactivation first records a
// durable marker, then prunes friends' references, then deletes the posts and
// sets the deactivated flag together. Every step is idempotent, so a run that
// stops midway is finished by ResumePending.
type DeactivationService struct {
	users       repository.UserRepository
	friends     repository.FriendRepository
	concurrency int
	now         func() time.Time
}

func NewDeactivationService(users repository.UserRepository, friends repository.FriendRepository) *DeactivationService {
	return &DeactivationService{
		users:       users,
		friends:     friends,
		concurrency: DefaultPruneConcurrency,
		now:         time.Now,
	}
}

// Deactivate retires userID. Failures to prune individual friend references are
// logged, counted and reported in the result rather than failing the request.
func (s *DeactivationService) Deactivate(ctx context.Context, userID uint) (*DeactivationResult, error) {
	// Once started, finish even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	span, ctx := observability.NewSpan(ctx, "deactivation.request", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	if err := s.users.MarkDeactivationRequested(ctx, userID, s.now()); err != nil {
		span.SetError(err)
		return nil, err
	}

	result, err := s.complete(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.Deactivations.WithLabelValues("request").Inc()
	return result, nil
}

// ResumePending finishes every deactivation that was marked but never flagged.
// It returns how many were completed; failures are joined into the error.
func (s *DeactivationService) ResumePending(ctx context.Context) (int, error) {
	ids, err := s.users.ListPendingDeactivations(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	completed := 0
	for _, id := range ids {
		task := observability.StartTask(ctx, "deactivation.resume", slog.Uint64("user_id", uint64(id)))
		result, err := s.complete(ctx, id)
		if err != nil {
			task.Failed(ctx, err)
			errs = append(errs, fmt.Errorf("user %d: %w", id, err))
			continue
		}
		task.Done(ctx, slog.Int64("posts_deleted", result.PostsDeleted), slog.Int("prune_failures", result.PruneFailures))
		observability.Deactivations.WithLabelValues("resume").Inc()
		completed++
	}
	return completed, errors.Join(errs...)
}

func (s *DeactivationService) complete(ctx context.Context, userID uint) (*DeactivationResult, error) {
	friendIDs, err := s.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	failures := s.pruneBackReferences(ctx, userID, friendIDs)

	var deleted int64
	err = observability.Traced(ctx, "deactivation.finalize", func(ctx context.Context) error {
		var err error
		deleted, err = s.users.CompleteDeactivation(ctx, userID)
		return err
	}, attribute.Int("prune_failures", failures))
	if err != nil {
		return nil, err
	}
	return &DeactivationResult{PostsDeleted: deleted, PruneFailures: failures}, nil
}

// pruneBackReferences removes userID from each friend's list concurrently and
// returns the number of friends whose reference could not be removed.
func (s *DeactivationService) pruneBackReferences(ctx context.Context, userID uint, friendIDs []uint) int {
	if len(friendIDs) == 0 {
		return 0
	}

	var failures atomic.Int64
	var g errgroup.Group
	g.SetLimit(max(s.concurrency, 1))

	for _, friendID := range friendIDs {
		g.Go(func() error {
			if _, err := s.friends.Remove(ctx, friendID, userID); err != nil {
				failures.Add(1)
				observability.FriendPruneFailures.Inc()
				observability.Logger.ErrorContext(ctx, "failed to prune friend reference",
					slog.Uint64("user_id", uint64(userID)),
					slog.Uint64("friend_id", uint64(friendID)),
					slog.String("error", err.Error()),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(failures.Load())
}
