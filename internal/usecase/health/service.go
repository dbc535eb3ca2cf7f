package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates an index that has not been created.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexes map[string]IndexChecker
}

// New creates a Service. indexes maps a check name to its index.
func New(db DBPinger, indexes map[string]IndexChecker) *Service {
	return &Service{db: db, indexes: indexes}
}

// Check runs health checks against all components.
// Index checks are skipped when the database is unreachable.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.indexes)+1)

	dbOK := s.db.Ping(ctx) == nil
	if dbOK {
		checks["database"] = CheckOK
	} else {
		checks["database"] = CheckError
	}

	for name, idx := range s.indexes {
		if !dbOK {
			checks[name] = CheckError
			continue
		}
		exists, err := idx.IndexExists(ctx)
		switch {
		case err != nil:
			checks[name] = CheckError
		case !exists:
			checks[name] = CheckMissing
		default:
			checks[name] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
