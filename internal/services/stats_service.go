package services

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"safety_reports/internal/metrics"
	"safety_reports/internal/models"
	"safety_reports/internal/status"
)

// Stats is the investigations dashboard payload. Every status key is always
// present in both maps.
type Stats struct {
	StatusData        map[string]int64   `json:"status_data"`
	StatusPercentages map[string]float64 `json:"status_percentages"`
	TotalReports      int64              `json:"total_reports"`
}

// StatsCache stores the last computed Stats for a short time.
type StatsCache interface {
	Get(ctx context.Context) (*Stats, bool)
	Set(ctx context.Context, s *Stats)
	StatsInvalidator
}

// StatsInvalidator is told whenever report counts may have changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// StatsService aggregates report counts per investigation status.
type StatsService struct {
	db    *gorm.DB
	cache StatsCache

	// generation is bumped by Invalidate. A result computed across a bump
	// is returned but not cached.
	generation atomic.Uint64
}

// NewStatsService builds the service; cache may be nil.
func NewStatsService(db *gorm.DB, cache StatsCache) *StatsService {
	return &StatsService{db: db, cache: cache}
}

// Invalidate drops any cached payload.
func (s *StatsService) Invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// InvestigationStats counts reports per status and each status's share of the total.
func (s *StatsService) InvestigationStats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			metrics.StatsCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.StatsCacheLookups.WithLabelValues("miss").Inc()
	}
	gen := s.generation.Load()

	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.SafetyReport{}).
		Select("investigation_status AS status, COUNT(*) AS count").
		Group("investigation_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.SafetyReport{}).Count(&total).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		if !status.Valid(r.Status) {
			logrus.WithField("status", r.Status).Warn("InvestigationStats: report with unknown status")
			continue
		}
		counts[r.Status] = r.Count
	}

	stats := BuildStats(counts, total)
	if s.cache != nil && s.generation.Load() == gen {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// BuildStats fills in all four statuses and their percentages of total,
// rounded to one decimal. A zero total yields zero percentages.
func BuildStats(counts map[string]int64, total int64) *Stats {
	stats := &Stats{
		StatusData:        make(map[string]int64, 4),
		StatusPercentages: make(map[string]float64, 4),
		TotalReports:      total,
	}
	for _, st := range status.All() {
		code := string(st)
		n := counts[code]
		stats.StatusData[code] = n
		if total > 0 {
			stats.StatusPercentages[code] = math.Round(float64(n)/float64(total)*1000) / 10
		} else {
			stats.StatusPercentages[code] = 0
		}
	}
	return stats
}
