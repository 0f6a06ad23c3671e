package report

import (
	"context"
	"errors"
)

// ErrNotFound signals that the store holds no record for the requested
// patient. It is not a processing error; the boundary maps it to 404.
var ErrNotFound = errors.New("patient not found")

// RawBundle is the single aggregation row returned by the store: identity
// columns plus the three raw sub-collections, exactly as stored. The
// collection slots are opaque until the normalizer classifies them.
type RawBundle struct {
	Name           string
	Email          string
	BirthDate      any
	Diaries        any
	Questionnaires any
	Diagnoses      any
}

// Repository fetches the aggregated health record for one patient in a
// single round trip.
type Repository interface {
	GetReportBundle(ctx context.Context, patientID string) (*RawBundle, error)
}
