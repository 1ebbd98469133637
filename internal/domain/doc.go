// Package domain holds what the dashboard's sub-packages share: sentinel
// errors and ValidationError. Projects, tasks and aggregation live in
// domain/project; the view model lives in domain/dashboard.
package domain
