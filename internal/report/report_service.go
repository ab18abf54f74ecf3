package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yohan114/leave-management-system/internal/leaverequest"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

const summaryCacheTTL = 60 * time.Second

type Service interface {
	Summary(ctx context.Context, year int, departmentID string) (SummaryResponse, error)
}

// service caches summaries in redis for a short window and collapses
// concurrent cache misses for the same key into a single set of queries.
type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Summary(ctx context.Context, year int, departmentID string) (SummaryResponse, error) {
	cacheKey := fmt.Sprintf("report:summary:%d:%s", year, departmentID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.buildSummary(ctx, year, departmentID, cacheKey)
	})
	if err != nil {
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) buildSummary(ctx context.Context, year int, departmentID, cacheKey string) (SummaryResponse, error) {
	resp := SummaryResponse{
		Year:            year,
		DepartmentID:    departmentID,
		GeneratedAtUnix: time.Now().Unix(),
	}

	var err error
	if resp.ActiveUsers, err = s.repo.CountActiveUsers(ctx); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}
	if resp.Departments, err = s.repo.CountDepartments(ctx); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}
	if resp.PendingCount, err = s.repo.CountRequestsByStatus(ctx, year, departmentID, leaverequest.StatusPending); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}
	if resp.ApprovedCount, err = s.repo.CountRequestsByStatus(ctx, year, departmentID, leaverequest.StatusApproved); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}
	if resp.RejectedCount, err = s.repo.CountRequestsByStatus(ctx, year, departmentID, leaverequest.StatusRejected); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}
	if resp.UsageByType, err = s.repo.ApprovedDaysByType(ctx, year, departmentID); err != nil {
		return SummaryResponse{}, storage.MapError(err)
	}

	if s.rdb != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, body, summaryCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache report summary", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return resp, nil
}
