package entity

import (
	"encoding/json"
	"time"
)

// ActivityLog is an immutable audit record. It is appended by every mutating
// service operation and never updated or deleted; the repository exposes no
// write path beyond Create.
type ActivityLog struct {
	ID        string
	User      string // actor display name, not id
	Action    string // free-form tag, e.g. CREATE_TANAH_GARAPAN
	Details   string // human-readable summary
	Payload   json.RawMessage // snapshot of the affected record, optional
	CreatedAt time.Time
}
