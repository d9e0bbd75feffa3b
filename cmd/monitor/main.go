package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fako1024/gaggiuino"
	"github.com/fako1024/gaggiuino/buffer"
	"github.com/fako1024/gaggiuino/db"
	"github.com/fako1024/gaggiuino/db/influx"
	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type config struct {
	MachineURL      string        `env:"GAGGIUINO_URL" env-default:"http://gaggiuino.local"`
	SampleInterval  time.Duration `env:"SAMPLE_INTERVAL" env-default:"5s"`
	SmoothingWindow int           `env:"SMOOTHING_WINDOW" env-default:"12"`

	ShotSyncSchedule string `env:"SHOT_SYNC_SCHEDULE" env-default:"@every 1m"`
	ShotSyncLimit    int    `env:"SHOT_SYNC_LIMIT" env-default:"10"`

	InfluxEndpoint string `env:"INFLUX_ENDPOINT" env-required:"true"`
	InfluxUser     string `env:"INFLUX_USER" env-default:"root"`
	InfluxPassword string `env:"INFLUX_PASSWORD" env-default:"root"`
	InfluxDatabase string `env:"INFLUX_DB" env-default:"gaggiuino"`
}

// monitor continuously samples the machine status and periodically syncs
// newly recorded shots into the database
type monitor struct {
	machine  *gaggiuino.Client
	influxDB db.DB
	cfg      config
	logger   *logrus.Logger

	tags        map[string]string
	tempBuf     *buffer.DataBuffer
	pressureBuf *buffer.DataBuffer

	mutex      sync.Mutex
	lastShotID int64
}

func main() {

	var cfg config
	logger := logrus.StandardLogger()
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Fatalf("Failed to read configuration from environment: %s", err)
	}

	machine, err := gaggiuino.New(
		gaggiuino.WithBaseURL(cfg.MachineURL),
		gaggiuino.WithLogger(logger),
	)
	if err != nil {
		logger.Fatalf("Failed to initialize machine client: %s", err)
	}

	influxDB := influx.New(cfg.InfluxEndpoint, cfg.InfluxUser, cfg.InfluxPassword)
	if err := influxDB.Ping(); err != nil {
		logger.Fatalf("Failed to reach InfluxDB endpoint: %s", err)
	}

	m := &monitor{
		machine:  machine,
		influxDB: influxDB,
		cfg:      cfg,
		logger:   logger,
		tags: map[string]string{
			"session": uuid.New().String(),
		},
		tempBuf:     buffer.NewDataBuffer(cfg.SmoothingWindow),
		pressureBuf: buffer.NewDataBuffer(cfg.SmoothingWindow),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	signal.Notify(sigChan, os.Interrupt)

	// Periodically sync newly recorded shots
	c := cron.New()
	if _, err := c.AddFunc(cfg.ShotSyncSchedule, func() {
		m.syncShots(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule shot sync: %s", err)
	}
	c.Start()

	// Continuously sample the machine status
	ticker := time.NewTicker(cfg.SampleInterval)
	defer ticker.Stop()

	logger.Infof("Monitoring machine at %s (session %s)", machine.BaseURL(), m.tags["session"])
	for {
		select {
		case <-ticker.C:
			m.sampleStatus(context.Background())
		case sig := <-sigChan:
			logger.Infof("Got signal %s, terminating", sig)
			<-c.Stop().Done()
			return
		}
	}
}

// sampleStatus reads the current machine status and emits it (raw and
// smoothed over the configured window) to the database
func (m *monitor) sampleStatus(ctx context.Context) {

	status, err := m.machine.Status(ctx)
	if err != nil {
		m.logger.Warnf("Failed to read machine status: %s", err)
		return
	}

	m.tempBuf.Append(float64(status.Temperature))
	m.pressureBuf.Append(float64(status.Pressure))

	dataPoint := status.TelemetryPoint(time.Now(), m.tags)
	dataPoint.Data["temperature_smoothed"] = m.tempBuf.Mean(m.cfg.SmoothingWindow)
	dataPoint.Data["pressure_smoothed"] = m.pressureBuf.Mean(m.cfg.SmoothingWindow)

	if err := m.influxDB.EmitDataPoints(m.cfg.InfluxDatabase, "status", db.DataPoints{dataPoint}); err != nil {
		m.logger.Errorf("Failed to emit status data point to influxDB: %s", err)
	}
}

// syncShots retrieves shots recorded since the last sync (bounded by the
// configured limit) and emits their summary and telemetry to the database
func (m *monitor) syncShots(ctx context.Context) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	latest, err := m.machine.LatestShotID(ctx)
	if err != nil {
		m.logger.Warnf("Failed to read latest shot id: %s", err)
		return
	}
	if latest <= m.lastShotID {
		return
	}

	start := m.lastShotID + 1
	if latest-start+1 > int64(m.cfg.ShotSyncLimit) {
		start = latest - int64(m.cfg.ShotSyncLimit) + 1
	}

	ids := make([]int64, 0, latest-start+1)
	for id := start; id <= latest; id++ {
		ids = append(ids, id)
	}

	shots, err := m.machine.ShotsByIDs(ctx, ids)
	if err != nil {
		m.logger.Errorf("Failed to retrieve shots %v: %s", ids, err)
		return
	}

	for _, shot := range shots {
		if err := m.influxDB.EmitDataPoints(m.cfg.InfluxDatabase, "summary", db.DataPoints{shot.SummaryPoint()}); err != nil {
			m.logger.Errorf("Failed to emit shot summary to influxDB: %s", err)
			return
		}
		if err := m.influxDB.EmitDataPoints(m.cfg.InfluxDatabase, "shots", shot.TelemetryPoints()); err != nil {
			m.logger.Errorf("Failed to emit shot data points to influxDB: %s", err)
			return
		}
	}

	m.lastShotID = latest
	m.logger.Infof("Synced %d shots (up to id %d)", len(shots), latest)
}
