package app

import (
	"sort"

	"hotel_insights/internal/domain"
)

// ApplyFilter returns the records matching all three predicates. A record
// without rooms or grade never satisfies a range.
func ApplyFilter(ds *domain.Dataset, f domain.Filter) domain.Selection {
	anyDistrict := f.AllowsAnyDistrict()
	allowed := make(map[string]bool, len(f.Districts))
	for _, d := range f.Districts {
		allowed[d] = true
	}
	return ds.Select(func(h domain.HotelRecord) bool {
		if !anyDistrict && !allowed[h.District] {
			return false
		}
		if h.Rooms == nil || !f.Rooms.Contains(*h.Rooms) {
			return false
		}
		return h.Grade != nil && f.Grade.Contains(*h.Grade)
	})
}

// Options derives the control values and bounds from the dataset.
func Options(ds *domain.Dataset) domain.FilterOptions {
	opts := domain.FilterOptions{Districts: []string{domain.AllDistricts}}
	seenDistrict := map[string]bool{}
	seenRegion := map[string]bool{}
	seenGrade := map[int]bool{}
	var haveRooms, haveGrade bool

	for i := 0; i < ds.Len(); i++ {
		h := ds.At(i)
		if h.District != "" && !seenDistrict[h.District] {
			seenDistrict[h.District] = true
			opts.Districts = append(opts.Districts, h.District)
		}
		if h.Region != "" && !seenRegion[h.Region] {
			seenRegion[h.Region] = true
			opts.Regions = append(opts.Regions, h.Region)
		}
		if h.Rooms != nil {
			opts.Rooms, haveRooms = widen(opts.Rooms, *h.Rooms, haveRooms), true
		}
		if h.Grade != nil {
			opts.Grade, haveGrade = widen(opts.Grade, *h.Grade, haveGrade), true
			if !seenGrade[*h.Grade] {
				seenGrade[*h.Grade] = true
				opts.Grades = append(opts.Grades, *h.Grade)
			}
		}
	}
	sort.Strings(opts.Regions)
	sort.Ints(opts.Grades)
	return opts
}

func widen(r domain.IntRange, v int, initialized bool) domain.IntRange {
	if !initialized {
		return domain.IntRange{Min: v, Max: v}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}
