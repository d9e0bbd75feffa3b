package db

import (
	"time"
)

// DataPoint denotes a single telemetry data point with specific timings
type DataPoint struct {
	TimeStamp time.Time
	Data      map[string]interface{}
	Tags      map[string]string
}

// DataPoints denotes a list of data points
type DataPoints []DataPoint

// DB is a generic DB interface, providing functionality to submit machine
// telemetry to a database
type DB interface {

	// EmitDataPoints creates data points and stores them in the underlying database
	EmitDataPoints(db, measurement string, data DataPoints) error

	// Ping verifies that the underlying database is reachable
	Ping() error
}
