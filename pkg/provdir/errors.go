package provdir

import "github.com/kailas-cloud/provdir/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRecord = domain.ErrInvalidRecord
	ErrNotFound      = domain.ErrNotFound
)
