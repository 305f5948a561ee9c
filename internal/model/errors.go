package model

import "fmt"

// InvalidItemError reports a cost item violating a field constraint.
type InvalidItemError struct {
	ItemName string
	Field    string
	Reason   string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item %q: field %s: %s", e.ItemName, e.Field, e.Reason)
}

// InvalidMarginError reports a margin percentage that makes a price
// computation undefined or negative.
type InvalidMarginError struct {
	MarginPercent float64
	Reason        string
}

func (e *InvalidMarginError) Error() string {
	return fmt.Sprintf("invalid margin %.2f%%: %s", e.MarginPercent, e.Reason)
}

// VersionNotFoundError reports a missing version for an estimate.
type VersionNotFoundError struct {
	EstimateID    string
	VersionNumber int
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %d not found for estimate %q", e.VersionNumber, e.EstimateID)
}
