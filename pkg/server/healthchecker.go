package server

import "context"

// HealthChecker answers the /health route. Backends supply their own
// implementations; OkHealthChecker covers backends with nothing to check.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct{}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(_ context.Context) bool {
	return true
}
