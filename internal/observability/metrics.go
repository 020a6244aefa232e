package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peached_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ProfileCacheLookups counts profile cache reads by result (hit, miss, bypass).
	ProfileCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peached_profile_cache_lookups_total",
		Help: "Profile cache lookups by result",
	}, []string{"result"})

	// AuthFailures counts rejected credential tokens by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peached_auth_failures_total",
		Help: "Rejected authentication attempts by reason",
	}, []string{"reason"})

	// FriendPruneFailures counts friend back-references that could not be removed
	// while deactivating an account.
	FriendPruneFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "peached_friend_prune_failures_total",
		Help: "Friend back-references that failed to prune during deactivation",
	})

	// Deactivations counts finished deactivations by trigger (request, resume).
	Deactivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peached_deactivations_total",
		Help: "Completed account deactivations by trigger",
	}, []string{"trigger"})
)
