package db

// Person represents a database roster record
type Person struct {
	ID           string
	Name         string
	Role         string
	DefaultShift string
}

// Override represents a database manual override record.
// Date is an ISO date (YYYY-MM-DD) and Code the cell text, e.g. "M/P".
type Override struct {
	PersonID string
	Date     string
	Code     string
}

// OverrideKey identifies one override
type OverrideKey struct {
	PersonID string
	Date     string
}

// ShiftUpdate changes a person's default shift
type ShiftUpdate struct {
	PersonID string
	Shift    string
}

// OverrideChanges is everything a single edit persists, written in one transaction
type OverrideChanges struct {
	Upserts     []Override
	Deletes     []OverrideKey
	ShiftUpdate *ShiftUpdate
}

// IsEmpty reports whether there is nothing to write
func (c OverrideChanges) IsEmpty() bool {
	return len(c.Upserts) == 0 && len(c.Deletes) == 0 && c.ShiftUpdate == nil
}

// Snapshot is the roster and override store read in one transaction
type Snapshot struct {
	People    []Person
	Overrides []Override
}
