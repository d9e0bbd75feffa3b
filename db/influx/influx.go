package influx

import (
	"fmt"

	"github.com/fako1024/gaggiuino/db"
	client "github.com/influxdata/influxdb1-client/v2"
)

// DB is an InfluxDB interface, providing functionality to interact with the database
type DB struct {
	config *client.HTTPConfig
}

// New creates a new InfluxDB instance
func New(addr, username, password string) *DB {
	return &DB{
		config: &client.HTTPConfig{
			Addr:     addr,
			Username: username,
			Password: password,
		},
	}
}

// Ping verifies that the InfluxDB endpoint is reachable
func (d *DB) Ping() error {
	c, err := client.NewHTTPClient(*d.config)
	if err != nil {
		return fmt.Errorf("error creating InfluxDB client: %s", err)
	}
	defer c.Close()

	if _, _, err := c.Ping(0); err != nil {
		return fmt.Errorf("error pinging InfluxDB endpoint %s: %s", d.config.Addr, err)
	}

	return nil
}

// EmitDataPoints creates data points and stores them in the underlying Influx database
func (d *DB) EmitDataPoints(dbName, measurement string, data db.DataPoints) error {

	// Create a new InfluxDB client
	c, err := client.NewHTTPClient(*d.config)
	if err != nil {
		return fmt.Errorf("error creating InfluxDB client for measurement %s on DB %s: %s", measurement, dbName, err)
	}
	defer c.Close()

	// Create a new point batch
	bp, _ := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  dbName,
		Precision: "ms",
	})

	for _, v := range data {
		pt, err := client.NewPoint(measurement, v.Tags, v.Data, v.TimeStamp)
		if err != nil {
			return fmt.Errorf("error creating InfluxDB point for measurement %s on DB %s: %s", measurement, dbName, err)
		}
		bp.AddPoint(pt)
	}

	// Write the batch
	if err = c.Write(bp); err != nil {
		return fmt.Errorf("error writing InfluxDB batch for measurement %s on DB %s: %s", measurement, dbName, err)
	}

	return nil
}
