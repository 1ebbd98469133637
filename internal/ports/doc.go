// Package ports declares the seams of the dashboard.
//
// DashboardService is implemented by the app layer and consumed by the HTTP
// handlers and the terminal command. ProjectSource is implemented by the
// source adapters and consumed once at startup. HealthChecker and
// HealthRegistry back the readiness probe.
package ports
