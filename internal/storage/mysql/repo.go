package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_insights/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotels(ctx context.Context, hs []domain.HotelRecord) error {
	if len(hs) == 0 {
		return nil
	}
	values := make([]string, 0, len(hs))
	args := make([]any, 0, len(hs)*10) // 10 params per row
	for _, h := range hs {
		values = append(values, hotelPlaceholders)
		args = append(args,
			h.Name,
			h.District,
			h.Address,
			h.Region,
			valInt(h.Rooms),
			valInt(h.Grade),
			valF64(h.Lat),
			valF64(h.Lon),
			valStr(h.HotelType),
			valStr(h.SizeCategory),
		)
	}
	sqlStr := insertHotelsPrefix + strings.Join(values, ",") + insertHotelsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelRecord
	for rows.Next() {
		var h domain.HotelRecord
		var (
			rooms, grade      sql.NullInt64
			lat, lon          sql.NullFloat64
			hotelType, sizeCt sql.NullString
		)
		if err := rows.Scan(
			&h.Name,
			&h.District,
			&h.Address,
			&h.Region,
			&rooms,
			&grade,
			&lat, &lon,
			&hotelType,
			&sizeCt,
		); err != nil {
			return nil, err
		}
		if rooms.Valid {
			n := int(rooms.Int64)
			h.Rooms = &n
		}
		if grade.Valid {
			g := int(grade.Int64)
			h.Grade = &g
		}
		if lat.Valid {
			f := lat.Float64
			h.Lat = &f
		}
		if lon.Valid {
			f := lon.Float64
			h.Lon = &f
		}
		if hotelType.Valid && hotelType.String != "" {
			s := hotelType.String
			h.HotelType = &s
		}
		if sizeCt.Valid && sizeCt.String != "" {
			s := sizeCt.String
			h.SizeCategory = &s
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountHotels(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countHotelsSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
