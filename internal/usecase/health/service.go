package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the search cluster is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
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
	cluster ClusterProbe
}

// New creates a Service.
func New(cluster ClusterProbe) *Service {
	return &Service{cluster: cluster}
}

// Available reports whether the search cluster is reachable.
func (s *Service) Available(ctx context.Context) bool {
	return s.cluster.ClusterAvailable(ctx)
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.cluster.ClusterAvailable(ctx) {
		checks["elasticsearch"] = CheckOK
	} else {
		checks["elasticsearch"] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
