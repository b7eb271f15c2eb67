package services

import (
	"go.uber.org/zap"

	"link_tracker/clock"
	"link_tracker/metrics"
	"link_tracker/models"
)

type ClickStore interface {
	Load() models.ClickLog
	Save(clickLog models.ClickLog) error
}

// ClickService records unique visitors and serves the stats views. Each call
// reloads the log from the store; nothing is cached between requests.
type ClickService struct {
	store     ClickStore
	targetURL string
	clock     clock.Clock
	logger    *zap.SugaredLogger
}

func NewClickService(store ClickStore, targetURL string, clk clock.Clock, logger *zap.SugaredLogger) *ClickService {
	return &ClickService{
		store:     store,
		targetURL: targetURL,
		clock:     clk,
		logger:    logger,
	}
}

func (s *ClickService) TargetURL() string {
	return s.targetURL
}

// RecordClick appends a record for ip unless one already exists. It reports
// whether a record was added. The check and the save are not atomic.
func (s *ClickService) RecordClick(ip, userAgent string) (bool, error) {
	timestamp := s.clock.Now().UTC().Format(models.TimestampLayout)

	clickLog := s.store.Load()

	if clickLog.HasIP(ip) {
		metrics.ClicksTotal.WithLabelValues(metrics.ResultReturning).Inc()
		s.logger.Infow("returning visitor (not counted)", "ip", ip, "timestamp", timestamp)
		return false, nil
	}

	clickLog.Clicks = append(clickLog.Clicks, models.ClickRecord{
		IP:        ip,
		Timestamp: timestamp,
		UserAgent: userAgent,
	})

	if err := s.store.Save(clickLog); err != nil {
		metrics.StoreErrors.Inc()
		s.logger.Errorw("failed to save click", "ip", ip, "error", err)
		return false, err
	}

	metrics.ClicksTotal.WithLabelValues(metrics.ResultNew).Inc()
	metrics.UniqueVisitors.Set(float64(clickLog.Len()))
	s.logger.Infow("new unique visitor recorded", "ip", ip, "timestamp", timestamp)
	return true, nil
}

func (s *ClickService) GetClicks() models.ClickLog {
	clickLog := s.store.Load()
	metrics.UniqueVisitors.Set(float64(clickLog.Len()))
	return clickLog
}

func (s *ClickService) GetStats() models.StatsResponse {
	clickLog := s.GetClicks()
	return models.StatsResponse{
		TotalUniqueVisitors: clickLog.Len(),
		Clicks:              clickLog.Clicks,
		TargetURL:           s.targetURL,
	}
}
