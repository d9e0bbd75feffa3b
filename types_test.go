package gaggiuino

import (
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

const testShotJSON = `{
	"id": 42,
	"timestamp": 1708185600,
	"duration": 285,
	"profile": {
		"id": 3,
		"name": "Turbo Bloom",
		"selected": "true",
		"waterTemperature": "93",
		"phases": [
			{
				"type": "PRESSURE",
				"skip": false,
				"target": {"curve": "EASE_OUT", "end": 9, "start": 4, "time": 6},
				"stopConditions": {"time": 25, "weight": "36.5"}
			},
			{
				"type": "FLOW",
				"skip": "no",
				"restriction": 3,
				"target": {"curve": "LINEAR", "end": 2.5},
				"stopConditions": {"pressureBelow": 2}
			}
		],
		"globalStopConditions": {"weight": "36.0", "time": 50},
		"recipe": {"coffeeIn": 18, "ratio": 2}
	},
	"datapoints": {
		"pressure": [10, 45, 90, 92],
		"pumpFlow": [20, 25, 30, 28],
		"shotWeight": [0, 52, 180, 365],
		"temperature": [925, 928, 930, 929],
		"timeInShot": [0, 10, 20, 30]
	}
}`

func TestParseShot(t *testing.T) {

	var shot Shot
	if err := jsoniter.Unmarshal([]byte(testShotJSON), &shot); err != nil {
		t.Fatalf("Failed to parse JSON: %s", err)
	}

	if shot.ID != 42 {
		t.Fatalf("Unexpected shot id: %d", shot.ID)
	}
	if shot.DurationSeconds() != 28.5 {
		t.Fatalf("Unexpected shot duration, want 28.5, have %f", shot.DurationSeconds())
	}
	if shot.Date().Unix() != 1708185600 {
		t.Fatalf("Unexpected shot date: %v", shot.Date())
	}

	if shot.Profile.ID != 3 || shot.Profile.Name != "Turbo Bloom" {
		t.Fatalf("Unexpected profile: %+v", shot.Profile)
	}
	if shot.Profile.Selected == nil || !bool(*shot.Profile.Selected) {
		t.Fatalf("Unexpected selected flag: %v", shot.Profile.Selected)
	}
	if shot.Profile.WaterTemperature == nil || *shot.Profile.WaterTemperature != 93 {
		t.Fatalf("Unexpected water temperature: %v", shot.Profile.WaterTemperature)
	}
	if len(shot.Profile.Phases) != 2 {
		t.Fatalf("Unexpected number of phases: %d", len(shot.Profile.Phases))
	}

	first := shot.Profile.Phases[0]
	if first.Type != PhaseTypePressure {
		t.Fatalf("Unexpected phase type: %s", first.Type)
	}
	if first.Target.Curve != "EASE_OUT" || first.Target.End != 9 {
		t.Fatalf("Unexpected phase target: %+v", first.Target)
	}
	if first.StopConditions.Weight == nil || *first.StopConditions.Weight != 36.5 {
		t.Fatalf("Unexpected weight stop condition: %v", first.StopConditions.Weight)
	}
	if first.StopConditions.PressureAbove != nil {
		t.Fatalf("Unexpected pressure stop condition: %v", first.StopConditions.PressureAbove)
	}

	second := shot.Profile.Phases[1]
	if second.Type != PhaseTypeFlow || bool(second.Skip) {
		t.Fatalf("Unexpected second phase: %+v", second)
	}
	if second.Restriction == nil || *second.Restriction != 3 {
		t.Fatalf("Unexpected flow restriction: %v", second.Restriction)
	}
	if second.Target.Start != nil || second.Target.Time != nil {
		t.Fatalf("Unexpected optional target fields: %+v", second.Target)
	}

	if v := shot.Profile.GlobalStopConditions["weight"]; v != 36.0 {
		t.Fatalf("Unexpected global weight stop condition: %f", v)
	}
	if shot.Profile.Recipe == nil || shot.Profile.Recipe.CoffeeIn != 18 || shot.Profile.Recipe.Ratio != 2 {
		t.Fatalf("Unexpected recipe: %+v", shot.Profile.Recipe)
	}
}

func TestShotDatapointScaling(t *testing.T) {

	var shot Shot
	if err := jsoniter.Unmarshal([]byte(testShotJSON), &shot); err != nil {
		t.Fatalf("Failed to parse JSON: %s", err)
	}
	d := shot.Datapoints

	for _, seq := range []struct {
		name    string
		raw     []int64
		derived []float64
	}{
		{"pressure", d.Pressure, d.PressureBar()},
		{"pumpFlow", d.PumpFlow, d.PumpFlowRate()},
		{"shotWeight", d.ShotWeight, d.ShotWeightGrams()},
		{"temperature", d.Temperature, d.TemperatureCelsius()},
		{"timeInShot", d.TimeInShot, d.TimeInShotSeconds()},
	} {
		if len(seq.derived) != len(seq.raw) {
			t.Fatalf("Unexpected derived length for %s, want %d, have %d", seq.name, len(seq.raw), len(seq.derived))
		}
		for i, v := range seq.raw {
			if seq.derived[i] != float64(v)/10.0 {
				t.Fatalf("Unexpected derived value for %s[%d], want %f, have %f", seq.name, i, float64(v)/10.0, seq.derived[i])
			}
		}
	}

	if d.PressureBar()[2] != 9.0 || d.TemperatureCelsius()[0] != 92.5 {
		t.Fatalf("Unexpected derived values: %v / %v", d.PressureBar(), d.TemperatureCelsius())
	}

	// Absent sequences must remain absent in derived form
	if d.WeightFlow != nil || d.WeightFlowRate() != nil {
		t.Fatalf("Unexpected non-nil weight flow: %v / %v", d.WeightFlow, d.WeightFlowRate())
	}
	if d.WaterPumped != nil || d.WaterPumpedML() != nil {
		t.Fatalf("Unexpected non-nil water pumped: %v / %v", d.WaterPumped, d.WaterPumpedML())
	}
}

func TestParseShotRequiredFields(t *testing.T) {

	var shot Shot
	if err := jsoniter.Unmarshal([]byte(`{"timestamp":1708185600,"duration":285}`), &shot); err == nil {
		t.Fatalf("Unexpected successful parse of shot without id")
	} else if !strings.Contains(err.Error(), "id") {
		t.Fatalf("Expected error to name the missing field: %s", err)
	}
}

func TestParseProfileRequiredFields(t *testing.T) {

	var profile Profile
	if err := jsoniter.Unmarshal([]byte(`{"name":"No ID"}`), &profile); err == nil {
		t.Fatalf("Unexpected successful parse of profile without id")
	}
	if err := jsoniter.Unmarshal([]byte(`{"id":1}`), &profile); err == nil {
		t.Fatalf("Unexpected successful parse of profile without name")
	} else if !strings.Contains(err.Error(), "name") {
		t.Fatalf("Expected error to name the missing field: %s", err)
	}

	// Optional fields may be absent without failing the decode
	if err := jsoniter.Unmarshal([]byte(`{"id":1,"name":"Bare"}`), &profile); err != nil {
		t.Fatalf("Failed to parse minimal profile: %s", err)
	}
	if profile.Selected != nil || profile.WaterTemperature != nil || profile.Phases != nil ||
		profile.GlobalStopConditions != nil || profile.Recipe != nil {
		t.Fatalf("Unexpected non-nil optional fields: %+v", profile)
	}
}

func TestParsePhaseTargetRequiredFields(t *testing.T) {

	var target PhaseTarget
	if err := jsoniter.Unmarshal([]byte(`{"end":9}`), &target); err == nil {
		t.Fatalf("Unexpected successful parse of target without curve")
	}
	if err := jsoniter.Unmarshal([]byte(`{"curve":"LINEAR"}`), &target); err == nil {
		t.Fatalf("Unexpected successful parse of target without end")
	} else if !strings.Contains(err.Error(), "end") {
		t.Fatalf("Expected error to name the missing field: %s", err)
	}
}

func TestParsePhaseTypeValidation(t *testing.T) {

	var phase Phase
	if err := jsoniter.Unmarshal([]byte(`{"type":"STEAM","target":{"curve":"LINEAR","end":9}}`), &phase); err == nil {
		t.Fatalf("Unexpected successful parse of invalid phase type")
	}
	if err := jsoniter.Unmarshal([]byte(`{"type":"FLOW","target":{"curve":"LINEAR","end":9}}`), &phase); err != nil {
		t.Fatalf("Failed to parse valid phase: %s", err)
	}

	if !IsValidPhaseType(PhaseTypePressure) || !IsValidPhaseType(PhaseTypeFlow) {
		t.Fatalf("Unexpected invalid phase type detected")
	}
	if IsValidPhaseType("") || IsValidPhaseType("STEAM") {
		t.Fatalf("Unexpected valid phase type detected")
	}
}

func TestParseMachineStatus(t *testing.T) {

	const (
		nativeJSON = `{"upTime":3600,"profileId":3,"profileName":"Turbo Bloom","targetTemperature":93,"temperature":92.5,` +
			`"pressure":9.2,"waterLevel":75,"weight":18.2,"brewSwitchState":true,"steamSwitchState":false}`
		stringlyJSON = `{"upTime":"3600","profileId":"3","profileName":"Turbo Bloom","targetTemperature":"93","temperature":"92.5",` +
			`"pressure":"9.2","waterLevel":"75","weight":"18.2","brewSwitchState":"yes","steamSwitchState":"No"}`
	)

	var native, stringly MachineStatus
	if err := jsoniter.Unmarshal([]byte(nativeJSON), &native); err != nil {
		t.Fatalf("Failed to parse JSON: %s", err)
	}
	if err := jsoniter.Unmarshal([]byte(stringlyJSON), &stringly); err != nil {
		t.Fatalf("Failed to parse JSON: %s", err)
	}

	if native != stringly {
		t.Fatalf("Unexpected difference between native and string decoding: %+v vs. %+v", native, stringly)
	}
	if native.Temperature != 92.5 || native.WaterLevel != 75 || !bool(native.BrewSwitchState) {
		t.Fatalf("Unexpected status values: %+v", native)
	}
}

func TestParseMachineStatusInvalidValue(t *testing.T) {

	var status MachineStatus
	err := jsoniter.Unmarshal([]byte(`{"temperature":"not-a-number"}`), &status)
	if err == nil {
		t.Fatalf("Unexpected successful parse of non-numeric temperature")
	}
	if !strings.Contains(err.Error(), "not-a-number") {
		t.Fatalf("Expected error to carry the offending value: %s", err)
	}
}
