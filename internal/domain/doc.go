// Package domain models Hawksbill sea turtle (Eretmochelys imbricata)
// sighting records and the derived views served to dashboard clients.
//
// # Data Source
//
// Sightings come from an OBIS-style occurrence export (one row per observed
// individual or nesting event), delivered as a CSV or XLSX file and read once
// at startup. The columns this service consumes:
//
//	date_year        observation year (integer; rows without it are dropped)
//	waterBody        ocean basin or sea, e.g. "South Pacific Ocean"
//	country          reporting country
//	decimalLatitude  WGS-84 latitude
//	decimalLongitude WGS-84 longitude
//	sst              sea-surface temperature at the sighting, degrees C
//	sss              sea-surface salinity at the sighting, PSU
//
// Every column except the year is optional. Missing values are carried as
// nil pointers rather than zero values, because 0 is a legal temperature,
// salinity, and coordinate. Where a missing category has to surface in an
// aggregate (habitat breakdowns), it appears under the [MissingMarker]
// label "NA".
//
// # Derived Views
//
// The four view functions ([YearlyCounts], [YearlyMeans], [CategoryCounts],
// [GeoFilter]) are pure: they never mutate the Dataset and recompute from
// scratch on every call, so independent callers (one per dashboard tab) can
// run them concurrently without locking.
//
// Sparse-group filtering: observation effort before 1990 is too thin to
// chart, and single-record groups are indistinguishable from data-entry
// noise, so the trend view drops years before [MinTrendYear] and both the
// trend and habitat views drop groups of size one.
//
// Category ordering: [CategoryCounts] sorts by descending count and breaks
// ties by the order in which a category was first encountered in the
// Dataset, so repeated calls over the same data return identical slices.
//
// # Failure Semantics
//
// The only error kind is [ErrInvalidInput]: a nil dataset, an unknown
// column, or an unknown category field. Empty results are valid outputs,
// never errors.
package domain
