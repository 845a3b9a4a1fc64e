package health

import (
	"runtime"
	"time"

	"gorm.io/gorm"
)

// Status represents the overall health of the application
type Status struct {
	Status    string                 `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]interface{} `json:"checks"`
	Duration  int64                  `json:"duration_ms"`
}

// Checker provides health check functionality
type Checker struct {
	db        *gorm.DB
	version   string
	startTime time.Time
}

// NewChecker creates a new health checker
func NewChecker(db *gorm.DB, version string) *Checker {
	return &Checker{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// Check performs a complete health check
func (hc *Checker) Check() Status {
	start := time.Now()
	status := Status{
		Timestamp: start,
		Version:   hc.version,
		Checks:    make(map[string]interface{}),
	}

	dbHealthy := hc.checkDatabase()
	status.Checks["database"] = map[string]interface{}{
		"healthy": dbHealthy,
	}

	goroutineCount := runtime.NumGoroutine()
	status.Checks["goroutines"] = map[string]interface{}{
		"count":   goroutineCount,
		"healthy": goroutineCount < 10000,
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	status.Checks["memory"] = map[string]interface{}{
		"alloc_mb": mem.Alloc / 1024 / 1024,
		"healthy":  true,
	}

	status.Checks["uptime_seconds"] = int64(time.Since(hc.startTime).Seconds())

	if dbHealthy {
		status.Status = "healthy"
	} else {
		status.Status = "unhealthy"
	}
	status.Duration = time.Since(start).Milliseconds()

	return status
}

// Ready reports whether the service can take traffic
func (hc *Checker) Ready() bool {
	return hc.checkDatabase()
}

func (hc *Checker) checkDatabase() bool {
	if hc.db == nil {
		return false
	}
	sqlDB, err := hc.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
