package domain

// MissingMarker is the label under which missing category values appear in
// aggregated views. Numeric nulls stay nil; only categories are relabelled,
// so a dashboard pie slice can show how much of the data is unattributed.
const MissingMarker = "NA"

// Observation is one Hawksbill sighting event. Year is always present; the
// loader drops rows without one. All other fields are nil when the export
// left them blank.
type Observation struct {
	Year      int      `json:"year"`
	WaterBody *string  `json:"waterBody,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Latitude  *float64 `json:"decimalLatitude,omitempty"`
	Longitude *float64 `json:"decimalLongitude,omitempty"`
	SST       *float64 `json:"sst,omitempty"`
	SSS       *float64 `json:"sss,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (o Observation) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// Column identifies a numeric observation column usable in mean aggregation.
type Column string

const (
	ColumnSST Column = "sst"
	ColumnSSS Column = "sss"
)

// value returns the column's value for an observation, nil when missing.
func (c Column) value(o Observation) *float64 {
	switch c {
	case ColumnSST:
		return o.SST
	case ColumnSSS:
		return o.SSS
	default:
		return nil
	}
}

// valid reports whether the column names a known numeric field.
func (c Column) valid() bool {
	return c == ColumnSST || c == ColumnSSS
}

// Field identifies a categorical observation column usable in count
// aggregation.
type Field string

const (
	FieldWaterBody Field = "waterBody"
	FieldCountry   Field = "country"
)

// value returns the field's value for an observation, substituting
// MissingMarker when the export left it blank.
func (f Field) value(o Observation) string {
	var v *string
	switch f {
	case FieldWaterBody:
		v = o.WaterBody
	case FieldCountry:
		v = o.Country
	}
	if v == nil {
		return MissingMarker
	}
	return *v
}

// valid reports whether the field names a known categorical column.
func (f Field) valid() bool {
	return f == FieldWaterBody || f == FieldCountry
}
