// Package health provides liveness and readiness endpoints for long
// running batch processes.
//
// # Endpoints
//
//   - /healthz: Liveness probe, 200 while the process is serving
//   - /readyz: Readiness probe, 503 when any registered check fails
//   - /version: Build information
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.Register("corpus", health.FileCheck("cards.yaml"))
//	checker.Register("store", health.PingCheck(st))
//
//	tracker := health.NewRunTracker()
//	checker.Register("last_run", tracker.Check)
//
//	mux := http.NewServeMux()
//	for path, h := range checker.Handlers(health.VersionInfo{Version: "0.1.0"}) {
//	    mux.Handle(path, h)
//	}
//
// Checks run concurrently, each bounded by the checker's timeout. A check
// that does not finish in time is reported as unhealthy.
package health
