package gaggiuino

import (
	"strconv"
	"time"

	"github.com/fako1024/gaggiuino/db"
)

// TelemetryTags returns the tags identifying the shot in emitted telemetry
func (s Shot) TelemetryTags() map[string]string {
	return map[string]string{
		"id":      strconv.FormatInt(s.ID, 10),
		"profile": s.Profile.Name,
	}
}

// TelemetryPoints converts the shot time series into generic data points,
// anchored at the shot timestamp and offset by the elapsed time within the
// shot (values in human units)
func (s Shot) TelemetryPoints() db.DataPoints {
	var (
		tags    = s.TelemetryTags()
		start   = s.Date()
		elapsed = s.Datapoints.TimeInShotSeconds()

		series = map[string][]float64{
			"pressure":           s.Datapoints.PressureBar(),
			"pump_flow":          s.Datapoints.PumpFlowRate(),
			"shot_weight":        s.Datapoints.ShotWeightGrams(),
			"target_pressure":    s.Datapoints.TargetPressureBar(),
			"target_pump_flow":   s.Datapoints.TargetPumpFlowRate(),
			"target_temperature": s.Datapoints.TargetTemperatureCelsius(),
			"temperature":        s.Datapoints.TemperatureCelsius(),
			"water_pumped":       s.Datapoints.WaterPumpedML(),
			"weight_flow":        s.Datapoints.WeightFlowRate(),
		}
	)

	n := len(elapsed)
	for _, values := range series {
		if len(values) > n {
			n = len(values)
		}
	}

	dataPoints := make(db.DataPoints, 0, n)
	for i := 0; i < n; i++ {

		// Default to the decisecond sampling interval of the firmware if the
		// elapsed-time sequence does not cover this index
		offset := float64(i) / 10.0
		if i < len(elapsed) {
			offset = elapsed[i]
		}

		data := make(map[string]interface{})
		for name, values := range series {
			if i < len(values) {
				data[name] = values[i]
			}
		}
		if len(data) == 0 {
			continue
		}

		dataPoints = append(dataPoints, db.DataPoint{
			TimeStamp: start.Add(time.Duration(offset * float64(time.Second))),
			Data:      data,
			Tags:      tags,
		})
	}

	return dataPoints
}

// SummaryPoint condenses the shot into a single data point
func (s Shot) SummaryPoint() db.DataPoint {
	data := map[string]interface{}{
		"duration_seconds": s.DurationSeconds(),
		"profile_id":       s.Profile.ID,
		"profile_name":     s.Profile.Name,
	}

	if weights := s.Datapoints.ShotWeightGrams(); len(weights) > 0 {
		data["final_weight"] = weights[len(weights)-1]
	}
	if pressures := s.Datapoints.PressureBar(); len(pressures) > 0 {
		peak := pressures[0]
		for _, v := range pressures[1:] {
			if v > peak {
				peak = v
			}
		}
		data["peak_pressure"] = peak
	}

	return db.DataPoint{
		TimeStamp: s.Date(),
		Data:      data,
		Tags:      s.TelemetryTags(),
	}
}

// TelemetryPoint converts the status snapshot into a generic data point
func (s MachineStatus) TelemetryPoint(timeStamp time.Time, tags map[string]string) db.DataPoint {
	return db.DataPoint{
		TimeStamp: timeStamp,
		Data: map[string]interface{}{
			"temperature":        float64(s.Temperature),
			"target_temperature": float64(s.TargetTemperature),
			"pressure":           float64(s.Pressure),
			"water_level":        int64(s.WaterLevel),
			"weight":             float64(s.Weight),
			"brew_switch":        bool(s.BrewSwitchState),
			"steam_switch":       bool(s.SteamSwitchState),
			"up_time":            int64(s.UpTime),
		},
		Tags: tags,
	}
}
