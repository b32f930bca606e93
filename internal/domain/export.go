package domain

// PackingRow is a single row in a trip's packing-list export.
// It is a flat, denormalized view: one row per gear link, with trip fields
// repeated for every row. Trips with no gear yield one row with zero values
// for all gear fields.
type PackingRow struct {
	// Trip fields, repeated for every row.
	TripID        string
	TripTitle     string
	TripStartDate string // "2006-01-02"
	TripEndDate   string // "2006-01-02"

	// Gear fields, zero values when the trip has no gear.
	GearName    string
	Category    string
	WeightGrams *int
	Quantity    int
	Packed      bool
	Used        bool
	Rating      *int
	Notes       string
}
