package goldprice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/simplifymoney/kuberai-backend/internal/models"
)

// ErrNoPriceData means both the live API and the backup snapshot came
// up empty. Callers must check for it before using any price fields.
var ErrNoPriceData = errors.New("live gold price unavailable and backup is empty")

// Service resolves gold prices with a live-then-backup fallback chain.
// A nil client means no API credential is configured: the network is
// skipped entirely and only the backup snapshot is consulted.
type Service struct {
	client *Client
	backup *BackupStore
	log    zerolog.Logger
}

func NewService(client *Client, backup *BackupStore, log zerolog.Logger) *Service {
	return &Service{client: client, backup: backup, log: log}
}

// CurrentPrice returns the spot price tagged with its source.
func (s *Service) CurrentPrice(ctx context.Context) (*models.PriceQuote, error) {
	if s.client != nil {
		price, err := s.client.Spot(ctx)
		if err == nil {
			return &models.PriceQuote{
				Source:          models.SourceLive,
				PricePerGramINR: round2(price),
			}, nil
		}
		s.log.Warn().Err(err).Msg("live spot fetch failed, falling back to backup")
	}

	backup := s.backup.Load()
	if len(backup) == 0 {
		return nil, ErrNoPriceData
	}
	latest := backup[len(backup)-1]
	return &models.PriceQuote{
		Source:          models.SourceBackup,
		PricePerGramINR: latest.Price,
	}, nil
}

// History returns the trailing `days` daily prices tagged with their
// source. The backup path returns the last `days` entries, or the whole
// series when it is shorter.
func (s *Service) History(ctx context.Context, days int) (*models.PriceHistory, error) {
	if s.client != nil {
		points, err := s.client.History(ctx, days)
		if err == nil {
			return &models.PriceHistory{Source: models.SourceLive, Points: points}, nil
		}
		s.log.Warn().Err(err).Int("days", days).Msg("live history fetch failed, falling back to backup")
	}

	backup := s.backup.Load()
	if len(backup) == 0 {
		return nil, ErrNoPriceData
	}
	if len(backup) > days {
		backup = backup[len(backup)-days:]
	}
	return &models.PriceHistory{Source: models.SourceBackup, Points: backup}, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
