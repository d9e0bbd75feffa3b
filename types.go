package gaggiuino

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// PhaseType denotes the control mode of a single profile phase
type PhaseType = string

const (

	// PhaseTypePressure denotes a phase targeting a pressure curve
	PhaseTypePressure = "PRESSURE"

	// PhaseTypeFlow denotes a phase targeting a flow curve
	PhaseTypeFlow = "FLOW"
)

var validPhaseTypes = map[PhaseType]struct{}{
	PhaseTypePressure: {},
	PhaseTypeFlow:     {},
}

// IsValidPhaseType checks and returns if a phase type is valid
func IsValidPhaseType(t PhaseType) bool {
	_, isValid := validPhaseTypes[t]

	return isValid
}

// ShotDatapoints denotes the time series recorded during a shot. All raw
// sequences carry values scaled by a factor of 10 from their physical unit
// exactly as transmitted by the machine; the respective accessor methods
// provide the values in human units. Absent sequences remain nil.
type ShotDatapoints struct {
	Pressure          []int64 `json:"pressure,omitempty"`
	PumpFlow          []int64 `json:"pumpFlow,omitempty"`
	ShotWeight        []int64 `json:"shotWeight,omitempty"`
	TargetPressure    []int64 `json:"targetPressure,omitempty"`
	TargetPumpFlow    []int64 `json:"targetPumpFlow,omitempty"`
	TargetTemperature []int64 `json:"targetTemperature,omitempty"`
	Temperature       []int64 `json:"temperature,omitempty"`
	TimeInShot        []int64 `json:"timeInShot,omitempty"`
	WaterPumped       []int64 `json:"waterPumped,omitempty"`
	WeightFlow        []int64 `json:"weightFlow,omitempty"`
}

// PressureBar returns the recorded pressure sequence in bar
func (d ShotDatapoints) PressureBar() []float64 {
	return scaledByTen(d.Pressure)
}

// PumpFlowRate returns the recorded pump flow sequence in mL/s
func (d ShotDatapoints) PumpFlowRate() []float64 {
	return scaledByTen(d.PumpFlow)
}

// ShotWeightGrams returns the recorded shot weight sequence in grams
func (d ShotDatapoints) ShotWeightGrams() []float64 {
	return scaledByTen(d.ShotWeight)
}

// TargetPressureBar returns the target pressure sequence in bar
func (d ShotDatapoints) TargetPressureBar() []float64 {
	return scaledByTen(d.TargetPressure)
}

// TargetPumpFlowRate returns the target pump flow sequence in mL/s
func (d ShotDatapoints) TargetPumpFlowRate() []float64 {
	return scaledByTen(d.TargetPumpFlow)
}

// TargetTemperatureCelsius returns the target temperature sequence in °C
func (d ShotDatapoints) TargetTemperatureCelsius() []float64 {
	return scaledByTen(d.TargetTemperature)
}

// TemperatureCelsius returns the recorded temperature sequence in °C
func (d ShotDatapoints) TemperatureCelsius() []float64 {
	return scaledByTen(d.Temperature)
}

// TimeInShotSeconds returns the elapsed-time sequence in seconds
func (d ShotDatapoints) TimeInShotSeconds() []float64 {
	return scaledByTen(d.TimeInShot)
}

// WaterPumpedML returns the pumped-water sequence in mL
func (d ShotDatapoints) WaterPumpedML() []float64 {
	return scaledByTen(d.WaterPumped)
}

// WeightFlowRate returns the weight flow sequence in g/s
func (d ShotDatapoints) WeightFlowRate() []float64 {
	return scaledByTen(d.WeightFlow)
}

// scaledByTen divides a raw sequence elementwise by 10.0, preserving absence
func scaledByTen(raw []int64) []float64 {
	if raw == nil {
		return nil
	}

	res := make([]float64, len(raw))
	for i, v := range raw {
		res[i] = float64(v) / 10.0
	}

	return res
}

// StopConditions denotes the conditions terminating a profile phase. Any
// subset may be absent.
type StopConditions struct {
	PressureAbove      *FlexFloat `json:"pressureAbove,omitempty"`
	PressureBelow      *FlexFloat `json:"pressureBelow,omitempty"`
	Time               *FlexFloat `json:"time,omitempty"`
	Weight             *FlexFloat `json:"weight,omitempty"`
	WaterPumpedInPhase *FlexFloat `json:"waterPumpedInPhase,omitempty"`
}

// PhaseTarget denotes the curve a profile phase drives towards
type PhaseTarget struct {
	Curve string     `json:"curve"`
	End   FlexFloat  `json:"end"`
	Start *FlexFloat `json:"start,omitempty"`
	Time  *FlexFloat `json:"time,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface, enforcing presence
// of the curve and end fields
func (t *PhaseTarget) UnmarshalJSON(data []byte) error {
	var aux struct {
		Curve *string    `json:"curve"`
		End   *FlexFloat `json:"end"`
		Start *FlexFloat `json:"start"`
		Time  *FlexFloat `json:"time"`
	}
	if err := jsoniter.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Curve == nil {
		return &DecodeError{Field: "curve"}
	}
	if aux.End == nil {
		return &DecodeError{Field: "end"}
	}

	t.Curve = *aux.Curve
	t.End = *aux.End
	t.Start = aux.Start
	t.Time = aux.Time

	return nil
}

// Phase denotes one stage of a brewing profile
type Phase struct {
	Restriction    *FlexFloat     `json:"restriction,omitempty"`
	Skip           FlexBool       `json:"skip"`
	StopConditions StopConditions `json:"stopConditions"`
	Target         PhaseTarget    `json:"target"`
	Type           PhaseType      `json:"type"`
}

// UnmarshalJSON implements the json.Unmarshaler interface, constraining the
// phase type to the documented set
func (p *Phase) UnmarshalJSON(data []byte) error {
	type phaseWire Phase
	var aux phaseWire
	if err := jsoniter.Unmarshal(data, &aux); err != nil {
		return err
	}
	if !IsValidPhaseType(aux.Type) {
		return &DecodeError{Field: "type", Value: aux.Type}
	}

	*p = Phase(aux)

	return nil
}

// BrewRecipe denotes the dosing recipe attached to a profile
type BrewRecipe struct {
	CoffeeIn FlexFloat `json:"coffeeIn"`
	Ratio    FlexFloat `json:"ratio"`
}

// Profile denotes a named brewing profile: a sequence of phases with targets
// and stop conditions
type Profile struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Selected             *FlexBool            `json:"selected,omitempty"`
	WaterTemperature     *FlexInt             `json:"waterTemperature,omitempty"`
	Phases               []Phase              `json:"phases,omitempty"`
	GlobalStopConditions map[string]FlexFloat `json:"globalStopConditions,omitempty"`
	Recipe               *BrewRecipe          `json:"recipe,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface, enforcing presence
// of the id and name fields
func (p *Profile) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID                   *FlexInt             `json:"id"`
		Name                 *string              `json:"name"`
		Selected             *FlexBool            `json:"selected"`
		WaterTemperature     *FlexInt             `json:"waterTemperature"`
		Phases               []Phase              `json:"phases"`
		GlobalStopConditions map[string]FlexFloat `json:"globalStopConditions"`
		Recipe               *BrewRecipe          `json:"recipe"`
	}
	if err := jsoniter.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return &DecodeError{Field: "id"}
	}
	if aux.Name == nil {
		return &DecodeError{Field: "name"}
	}

	p.ID = int64(*aux.ID)
	p.Name = *aux.Name
	p.Selected = aux.Selected
	p.WaterTemperature = aux.WaterTemperature
	p.Phases = aux.Phases
	p.GlobalStopConditions = aux.GlobalStopConditions
	p.Recipe = aux.Recipe

	return nil
}

// Shot denotes one completed espresso extraction recorded by the machine,
// including the profile active at the time and its telemetry
type Shot struct {
	ID         int64          `json:"id"`
	Timestamp  int64          `json:"timestamp"` // Unix seconds
	Duration   int64          `json:"duration"`  // Deciseconds
	Profile    Profile        `json:"profile"`
	Datapoints ShotDatapoints `json:"datapoints"`
}

// UnmarshalJSON implements the json.Unmarshaler interface, enforcing presence
// of the id field
func (s *Shot) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         *FlexInt       `json:"id"`
		Timestamp  FlexInt        `json:"timestamp"`
		Duration   FlexInt        `json:"duration"`
		Profile    Profile        `json:"profile"`
		Datapoints ShotDatapoints `json:"datapoints"`
	}
	if err := jsoniter.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return &DecodeError{Field: "id"}
	}

	s.ID = int64(*aux.ID)
	s.Timestamp = int64(aux.Timestamp)
	s.Duration = int64(aux.Duration)
	s.Profile = aux.Profile
	s.Datapoints = aux.Datapoints

	return nil
}

// Date returns the calendar date / time at which the shot was pulled
func (s Shot) Date() time.Time {
	return time.Unix(s.Timestamp, 0)
}

// DurationSeconds returns the shot duration in seconds
func (s Shot) DurationSeconds() float64 {
	return float64(s.Duration) / 10.0
}

// MachineStatus denotes a snapshot of the machine state. All scalar fields may
// be transmitted either as native JSON numbers / booleans or as their string
// representations.
type MachineStatus struct {
	ProfileID         FlexInt   `json:"profileId"`
	ProfileName       string    `json:"profileName"`
	Temperature       FlexFloat `json:"temperature"`       // °C
	TargetTemperature FlexFloat `json:"targetTemperature"` // °C
	Pressure          FlexFloat `json:"pressure"`          // bar
	WaterLevel        FlexInt   `json:"waterLevel"`        // Percent (0-100)
	Weight            FlexFloat `json:"weight"`            // Grams
	BrewSwitchState   FlexBool  `json:"brewSwitchState"`
	SteamSwitchState  FlexBool  `json:"steamSwitchState"`
	UpTime            FlexInt   `json:"upTime"` // Seconds
}
