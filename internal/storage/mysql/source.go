package mysql

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_insights/internal/domain"
)

// Source serves the imported table as a dataset. The table carries every
// standard column, so all capabilities are present.
type Source struct{ repo domain.HotelRepository }

func NewSource(repo domain.HotelRepository) *Source { return &Source{repo: repo} }

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	log.Info().Int("records", len(hs)).Msg("dataset loaded from mysql")
	return domain.NewDataset(domain.StandardColumns, hs), nil
}
