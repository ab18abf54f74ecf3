package consumer

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type leaveEvent struct {
	RequestID   string `json:"request_id"`
	UserID      string `json:"user_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Status      string `json:"status"`
	TotalDays   string `json:"total_days"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// ConsumeLeaveLifecycle drops cached report summaries whenever a leave
// request changes state, so reports never serve a full TTL of stale counts
// after a transition.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event leaveEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := invalidateSummaries(ctx, rdb); err != nil {
			log.Error("invalidate report summaries failed",
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("report summaries invalidated",
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
		)
	}
}

func invalidateSummaries(ctx context.Context, rdb *redis.Client) error {
	iter := rdb.Scan(ctx, 0, "report:summary:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
