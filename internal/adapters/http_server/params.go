package httpserver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hotel_insights/internal/domain"
)

// parseFilter reads the primary filter. An absent district parameter means
// All; a district parameter with only empty values selects nothing. Absent
// bounds default to the data bounds.
func parseFilter(q url.Values, opts domain.FilterOptions) (domain.Filter, error) {
	f := opts.DefaultFilter()
	if vs, ok := q["district"]; ok {
		f.Districts = make([]string, 0, len(vs))
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				f.Districts = append(f.Districts, v)
			}
		}
	}

	var err error
	if f.Rooms.Min, err = intParam(q, "rooms_min", f.Rooms.Min); err != nil {
		return f, err
	}
	if f.Rooms.Max, err = intParam(q, "rooms_max", f.Rooms.Max); err != nil {
		return f, err
	}
	if f.Grade.Min, err = intParam(q, "grade_min", f.Grade.Min); err != nil {
		return f, err
	}
	if f.Grade.Max, err = intParam(q, "grade_max", f.Grade.Max); err != nil {
		return f, err
	}
	return f, nil
}

func parseExplore(q url.Values, opts domain.FilterOptions) (domain.ExploreQuery, error) {
	e := opts.DefaultExplore()
	if v := strings.TrimSpace(q.Get("region")); v != "" {
		e.Region = v
	}
	var err error
	e.Grade, err = intParam(q, "grade", e.Grade)
	return e, err
}

func parseStyle(q url.Values) (domain.ChartStyle, error) {
	switch s := domain.ChartStyle(q.Get("chart")); s {
	case "", domain.StyleLine:
		return domain.StyleLine, nil
	case domain.StyleScatter:
		return s, nil
	default:
		return "", fmt.Errorf("chart must be %q or %q", domain.StyleLine, domain.StyleScatter)
	}
}

func intParam(q url.Values, key string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// filterQuery encodes f back into request parameters.
func filterQuery(f domain.Filter) url.Values {
	q := url.Values{}
	q["district"] = append([]string{""}, f.Districts...)
	q.Set("rooms_min", strconv.Itoa(f.Rooms.Min))
	q.Set("rooms_max", strconv.Itoa(f.Rooms.Max))
	q.Set("grade_min", strconv.Itoa(f.Grade.Min))
	q.Set("grade_max", strconv.Itoa(f.Grade.Max))
	return q
}
