package processor

import (
	"context"

	"ecoluxe/pkg/logger"

	"github.com/robfig/cron/v3"
)

// TrendingRefresherService пересчитывает топ трендов и перезаписывает кеш
type TrendingRefresherService interface {
	RefreshTrending(ctx context.Context) error
}

// TrendingRefresher периодически прогревает Redis кеш трендовых товаров,
// чтобы лента и /products/trending не ходили в MongoDB на каждый запрос
type TrendingRefresher struct {
	cron       *cron.Cron
	catalogSvc TrendingRefresherService
}

func NewTrendingRefresher(catalogSvc TrendingRefresherService) *TrendingRefresher {
	return &TrendingRefresher{
		cron:       cron.New(),
		catalogSvc: catalogSvc,
	}
}

// Start запускает планировщик и сразу выполняет первый прогрев кеша
func (r *TrendingRefresher) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting trending refresher")

	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.catalogSvc.RefreshTrending(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh trending cache")
		} else {
			logger.Debug().Msg("Trending cache refreshed")
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()

	if err := r.catalogSvc.RefreshTrending(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial trending cache warmup")
	}

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего запуска
func (r *TrendingRefresher) Stop() {
	logger.Info().Msg("Stopping trending refresher...")
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Trending refresher stopped")
}
