package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hotel_insights/internal/domain"
)

type ImportService struct {
	repo domain.HotelRepository
}

func NewImportService(r domain.HotelRepository) *ImportService {
	return &ImportService{repo: r}
}

// Import copies every record of ds into the repository, batchSize rows per
// upsert and at most workers upserts in flight. It returns the rows written.
func (s *ImportService) Import(ctx context.Context, ds *domain.Dataset, batchSize, workers int) (int, error) {
	if batchSize <= 0 {
		batchSize = 200
	}
	if workers <= 0 {
		workers = 1
	}
	recs := ds.All().Records()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var written atomic.Int64
	for start := 0; start < len(recs); start += batchSize {
		start := start
		end := min(start+batchSize, len(recs))
		batch := recs[start:end]
		g.Go(func() error {
			if err := s.repo.UpsertHotels(ctx, batch); err != nil {
				return fmt.Errorf("upsert rows %d-%d: %w", start, end-1, err)
			}
			written.Add(int64(len(batch)))
			return nil
		})
	}
	err := g.Wait()
	return int(written.Load()), err
}
