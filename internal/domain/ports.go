package domain

import "context"

// DatasetSource produces the dataset the dashboard serves.
type DatasetSource interface {
	Load(ctx context.Context) (*Dataset, error)
}

// HotelRepository is the SQL copy of the dataset fed by the importer.
type HotelRepository interface {
	// Write paths
	UpsertHotels(ctx context.Context, hs []HotelRecord) error

	// Read paths
	ListHotels(ctx context.Context) ([]HotelRecord, error)
	CountHotels(ctx context.Context) (int, error)
}
