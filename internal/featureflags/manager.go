// Package featureflags evaluates rollout switches read from FEATURE_FLAGS.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// TokenFingerprint gates rejection of tokens whose password fingerprint is stale.
const TokenFingerprint = "token_fingerprint"

// rollout is the share of users, 0..100, a flag is enabled for.
type rollout int

const (
	rolloutOff rollout = 0
	rolloutAll rollout = 100
)

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "token_fingerprint=on,new_feed=25%,legacy_ui=off"
type Manager struct {
	flags map[string]rollout
}

// NewManager creates a feature-flag manager from a comma-separated config string.
// Pairs with unparseable values are dropped.
func NewManager(raw string) *Manager {
	out := make(map[string]rollout)

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalize(key)
		if key == "" {
			continue
		}
		r, ok := parseRollout(normalize(value))
		if !ok {
			continue
		}
		out[key] = r
	}

	return &Manager{flags: out}
}

func parseRollout(value string) (rollout, bool) {
	switch value {
	case "on", "true", "1":
		return rolloutAll, true
	case "off", "false", "0":
		return rolloutOff, true
	}
	pctRaw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return 0, false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil {
		return 0, false
	}
	return rollout(min(max(pct, 0), 100)), true
}

// Enabled returns whether a flag is enabled for a given user.
// Percentage rollouts bucket users deterministically, and never include user 0.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	r, ok := m.flags[normalize(name)]
	switch {
	case !ok || r == rolloutOff:
		return false
	case r == rolloutAll:
		return true
	case userID == 0:
		return false
	}
	return rolloutBucket(name, userID) < int(r)
}

// Raw returns the configured flags rendered back to their textual form.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.flags))
	for k, r := range m.flags {
		switch r {
		case rolloutAll:
			out[k] = "on"
		case rolloutOff:
			out[k] = "off"
		default:
			out[k] = strconv.Itoa(int(r)) + "%"
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
