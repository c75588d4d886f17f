package locations

// Field names managed by the store. Everything else in a Record belongs to
// the caller and is stored verbatim.
const (
	FieldID          = "id"
	FieldLastUpdated = "lastUpdated"
)

// Record is a single location document: arbitrary string-keyed fields plus
// the two store-managed identity fields. The store is the sole writer of
// FieldID and FieldLastUpdated.
type Record map[string]any

// ID returns the record's id, or an empty string if it has none (or it is
// not a string).
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone returns a shallow copy of the record, so the store can stamp its
// managed fields without mutating the caller's map.
func (r Record) Clone() Record {
	c := make(Record, len(r)+2)
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Snapshot is the full persisted state of the store: the ordered record
// sequence plus the store-level timestamp of the most recent mutation.
// LastUpdated is nil, serialized as null, until the first mutation.
type Snapshot struct {
	Locations   []Record `json:"locations"`
	LastUpdated *string  `json:"lastUpdated"`
}

// Info is the read-only store summary served by GET /api/database.
type Info struct {
	TotalLocations int     `json:"totalLocations"`
	LastUpdated    *string `json:"lastUpdated"`
}
