package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	"github.com/fako1024/gaggiuino"
	"github.com/fako1024/gaggiuino/db"
	"github.com/fako1024/gaggiuino/db/influx"
	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02T15:04:05"

type config struct {
	machineURL string
	limit      int

	csvFile string

	influxEndpoint string
	influxUser     string
	influxPassword string
	influxDatabase string
}

func main() {

	var (
		cfg config
	)

	// Basic flags for machine communication
	flag.StringVar(&cfg.machineURL, "url", gaggiuino.DefaultBaseURL, "Base address of the machine")
	flag.IntVar(&cfg.limit, "limit", gaggiuino.DefaultRecentShotLimit, "Maximum number of recent shots to export")

	// Flags for CSV / InfluxDB output
	flag.StringVar(&cfg.csvFile, "csv", "", "Path to CSV file")
	flag.StringVar(&cfg.influxEndpoint, "influxEndpoint", "", "Endpoint for InfluxDB emissions")
	flag.StringVar(&cfg.influxUser, "influxUser", "root", "User for InfluxDB emissions")
	flag.StringVar(&cfg.influxPassword, "influxPassword", "root", "Password for InfluxDB emissions")
	flag.StringVar(&cfg.influxDatabase, "influxDB", "gaggiuino", "InfluxDB database for emissions")

	flag.Parse()
	logger := logrus.StandardLogger()
	if cfg.csvFile == "" && cfg.influxEndpoint == "" {
		logger.Fatalf("No CSV file or InfluxDB endpoint specified")
	}

	machine, err := gaggiuino.New(
		gaggiuino.WithBaseURL(cfg.machineURL),
		gaggiuino.WithLogger(logger),
	)
	if err != nil {
		logger.Fatalf("Failed to initialize machine client: %s", err)
	}

	// Retrieve the most recent shots from the machine
	shots, err := machine.RecentShots(context.Background(), cfg.limit)
	if err != nil {
		logger.Fatalf("Failed to retrieve shots from %s: %s", cfg.machineURL, err)
	}
	logger.Infof("Retrieved %d shots from %s", len(shots), cfg.machineURL)

	if cfg.influxEndpoint != "" {
		emitShots(cfg, shots, logger)
	}
	if cfg.csvFile != "" {
		writeCSV(cfg, shots, logger)
	}
}

func emitShots(cfg config, shots []gaggiuino.Shot, logger *logrus.Logger) {

	influxDB := influx.New(
		cfg.influxEndpoint,
		cfg.influxUser,
		cfg.influxPassword,
	)

	for _, shot := range shots {

		// Emit the summary to the influxDB
		if err := influxDB.EmitDataPoints(cfg.influxDatabase, "summary", db.DataPoints{shot.SummaryPoint()}); err != nil {
			logger.Fatalf("Failed to emit shot summary to influxDB: %s", err)
		}

		// Emit the telemetry data points to the influxDB
		if err := influxDB.EmitDataPoints(cfg.influxDatabase, "shots", shot.TelemetryPoints()); err != nil {
			logger.Fatalf("Failed to emit shot data points to influxDB: %s", err)
		}
	}
}

func writeCSV(cfg config, shots []gaggiuino.Shot, logger *logrus.Logger) {

	// Open the file
	csvData, err := os.OpenFile(cfg.csvFile, os.O_CREATE|os.O_WRONLY, 0660)
	if err != nil {
		logger.Fatalf("Failed to open CSV file: %s", err)
	}
	defer csvData.Close()

	w := csv.NewWriter(csvData)

	// Iterate through the shots
	for _, shot := range shots {

		row := []string{
			strconv.FormatInt(shot.ID, 10),
			shot.Profile.Name,
			shot.Date().Format(timestampLayout),
			strconv.FormatFloat(shot.DurationSeconds(), 'f', 1, 64),
		}
		if weights := shot.Datapoints.ShotWeightGrams(); len(weights) > 0 {
			row = append(row, strconv.FormatFloat(weights[len(weights)-1], 'f', 2, 64))
		} else {
			row = append(row, "")
		}

		if err := w.Write(row); err != nil {
			logger.Fatalf("Failed to write record %v: %s", row, err)
		}
	}

	w.Flush()
}
