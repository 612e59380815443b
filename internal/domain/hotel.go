package domain

import "strconv"

// Column names as they appear in the source file (after the Longitude rename).
const (
	ColName         = "Name"
	ColDistrict     = "District"
	ColAddress      = "Address"
	ColRegion       = "Region"
	ColRooms        = "Rooms"
	ColGrade        = "Grade"
	ColLatitude     = "Latitude"
	ColLongitude    = "Longitude"
	ColHotelType    = "Hotel_Type"
	ColSizeCategory = "Hotel_Size_Category"

	// LegacyLongitude is the misspelled header shipped in the source file.
	LegacyLongitude = "Logitiute"
)

// RequiredColumns must be present for a dataset to load at all.
var RequiredColumns = []string{ColName, ColDistrict, ColAddress, ColRegion, ColRooms, ColGrade}

// StandardColumns is the full header in source order.
var StandardColumns = []string{
	ColName, ColDistrict, ColAddress, ColRooms, ColGrade, ColRegion,
	ColLongitude, ColLatitude, ColHotelType, ColSizeCategory,
}

type HotelRecord struct {
	Name         string
	District     string
	Address      string
	Region       string
	Rooms        *int
	Grade        *int
	Lat, Lon     *float64
	HotelType    *string
	SizeCategory *string
	Extra        map[string]string // columns this service does not interpret, by header
}

// Cell returns the textual value of col, "" when the value is missing.
func (h HotelRecord) Cell(col string) string {
	switch col {
	case ColName:
		return h.Name
	case ColDistrict:
		return h.District
	case ColAddress:
		return h.Address
	case ColRegion:
		return h.Region
	case ColRooms:
		return fmtInt(h.Rooms)
	case ColGrade:
		return fmtInt(h.Grade)
	case ColLatitude:
		return fmtFloat(h.Lat)
	case ColLongitude:
		return fmtFloat(h.Lon)
	case ColHotelType:
		return deref(h.HotelType)
	case ColSizeCategory:
		return deref(h.SizeCategory)
	}
	return h.Extra[col]
}

// HasCoords reports whether both coordinates are present.
func (h HotelRecord) HasCoords() bool { return h.Lat != nil && h.Lon != nil }

func fmtInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func fmtFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
