package consumer

import (
	"context"
	"encoding/json"

	"resto-admin/internal/catalog"
	"resto-admin/internal/events"
	"resto-admin/internal/feature"
	"resto-admin/internal/metrics"
	"resto-admin/internal/permission"
	"resto-admin/internal/role"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type PrefixInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// CachePrefixes maps an audited resource to the cache prefixes holding it. Features embed their
// permissions and permissions carry their featureId, so either edit drops both caches. Assignment
// changes are audited against their owner: a feature's permission set lands under "feature" and a
// role's features or permissions under "role", which only drops the role cache.
func CachePrefixes(resource string) []string {
	switch resource {
	case "feature":
		return []string{feature.CacheKeyPrefix, permission.CacheKeyPrefix}
	case "permission":
		return []string{permission.CacheKeyPrefix, feature.CacheKeyPrefix}
	case "role":
		return []string{role.CacheKeyPrefix}
	}
	if _, ok := catalog.Lookup(resource); ok {
		return []string{catalog.CacheKeyPrefix + resource}
	}
	return nil
}

// ConsumeAuditEvents drops cached lists touched by audited mutations until ctx is cancelled.
// Messages that fail invalidation are left uncommitted and redelivered.
func ConsumeAuditEvents(
	ctx context.Context,
	reader MessageReader,
	invalidator PrefixInvalidator,
	m *metrics.Metrics,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		var event events.AuditRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType != events.AuditRecordedType {
			log.Warn("skipping undecodable audit message", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if !invalidate(ctx, invalidator, m, event, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
		}
	}
}

func invalidate(ctx context.Context, invalidator PrefixInvalidator, m *metrics.Metrics, event events.AuditRecordedEvent, log *zap.Logger) bool {
	for _, prefix := range CachePrefixes(event.Resource) {
		if err := invalidator.InvalidatePrefix(ctx, prefix); err != nil {
			log.Error("invalidate cache failed",
				zap.String("resource", event.Resource),
				zap.String("prefix", prefix),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			return false
		}
		m.CacheInvalidated(event.Resource)
	}
	log.Debug("audit event handled",
		zap.String("action", event.Action),
		zap.String("resource", event.Resource),
		zap.String("resource_id", event.ResourceID),
	)
	return true
}
