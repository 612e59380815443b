package domain

// Capability marks an optional group of columns a dataset exposes.
type Capability uint8

const (
	CapCoordinates Capability = 1 << iota
	CapHotelType
	CapSizeCategory
)

func (c Capability) String() string {
	switch c {
	case CapCoordinates:
		return "coordinates"
	case CapHotelType:
		return "hotel_type"
	case CapSizeCategory:
		return "size_category"
	}
	return "unknown"
}

// Dataset is the loaded table. It is built once and never mutated; share it by pointer.
type Dataset struct {
	columns []string
	records []HotelRecord
	caps    Capability
}

// NewDataset takes ownership of columns and records.
func NewDataset(columns []string, records []HotelRecord) *Dataset {
	d := &Dataset{columns: columns, records: records}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	if seen[ColLatitude] && seen[ColLongitude] {
		d.caps |= CapCoordinates
	}
	if seen[ColHotelType] {
		d.caps |= CapHotelType
	}
	if seen[ColSizeCategory] {
		d.caps |= CapSizeCategory
	}
	return d
}

func (d *Dataset) Has(c Capability) bool { return d.caps&c == c }

func (d *Dataset) Len() int { return len(d.records) }

// Columns returns a copy of the header.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// At returns the i-th record by value.
func (d *Dataset) At(i int) HotelRecord { return d.records[i] }

// All is a selection over every record.
func (d *Dataset) All() Selection {
	idx := make([]int, len(d.records))
	for i := range idx {
		idx[i] = i
	}
	return Selection{ds: d, idx: idx}
}

// Select builds a selection of the records for which keep returns true.
func (d *Dataset) Select(keep func(HotelRecord) bool) Selection {
	idx := make([]int, 0, len(d.records))
	for i := range d.records {
		if keep(d.records[i]) {
			idx = append(idx, i)
		}
	}
	return Selection{ds: d, idx: idx}
}

// Selection is a read-only view into a Dataset.
type Selection struct {
	ds  *Dataset
	idx []int
}

func (s Selection) Len() int { return len(s.idx) }

func (s Selection) Empty() bool { return len(s.idx) == 0 }

func (s Selection) At(i int) HotelRecord { return s.ds.records[s.idx[i]] }

func (s Selection) Dataset() *Dataset { return s.ds }

// Records copies the selected rows out, in dataset order.
func (s Selection) Records() []HotelRecord {
	out := make([]HotelRecord, len(s.idx))
	for i, j := range s.idx {
		out[i] = s.ds.records[j]
	}
	return out
}

// Select narrows the selection further.
func (s Selection) Select(keep func(HotelRecord) bool) Selection {
	idx := make([]int, 0, len(s.idx))
	for _, j := range s.idx {
		if keep(s.ds.records[j]) {
			idx = append(idx, j)
		}
	}
	return Selection{ds: s.ds, idx: idx}
}
