package scheduler

import (
	"context"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/pkg/logger"
)

// Notifier delivers one user's digest matches. Implementations may push to
// email, mobile, or a message queue; delivery failures do not abort the run.
type Notifier interface {
	Notify(ctx context.Context, userID string, matches []match.Score) error
}

// LogNotifier writes digests to the service log. It is the default sink and
// stands in until a real delivery channel is wired.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a notifier backed by the global logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Get().Named("digest")}
}

// Notify logs the digest headline for one user.
func (n *LogNotifier) Notify(ctx context.Context, userID string, matches []match.Score) error {
	top := 0
	if len(matches) > 0 {
		top = matches[0].Overall
	}
	n.log.Info(ctx, "daily digest ready",
		logger.String("user_id", userID),
		logger.Int("matches", len(matches)),
		logger.Int("top_score", top))
	return nil
}
