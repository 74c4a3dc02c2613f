package domain

// A fixed commute destination configured at process start.
// The office list is immutable during a run.
type OfficeTarget struct {
	ID      string
	Name    string
	Address string
}
