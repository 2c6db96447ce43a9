package dsprep

import "github.com/pkg/errors"

// Error classes. Errors returned by this package wrap one of these where the class matters to the
// caller, test with errors.Is.
var (
	// ErrConfig marks unsupported datasets and invalid argument combinations.
	ErrConfig = errors.New("invalid configuration")
	// ErrConsistency marks manifests or split sources that contradict each other.
	ErrConsistency = errors.New("inconsistent dataset")
	// ErrMalformedName marks file names that do not follow the dataset's naming convention.
	ErrMalformedName = errors.New("malformed file name")
)
