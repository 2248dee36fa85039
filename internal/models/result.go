package models

import "time"

// OperatingPoint is the ambient condition a cycle evaluation runs at
type OperatingPoint struct {
	AmbientTemperature float64 `json:"ambient_temperature_k"` // K
	AmbientPressure    float64 `json:"ambient_pressure_pa"`   // Pa
}

// CycleResult holds the station states and performance figures from a single
// 0-D cycle evaluation.
//
// Station numbering follows the integrated flow path:
//
//	2: compressor exit
//	3: combustor exit
//	4: turbine exit
//	5: nozzle exit
type CycleResult struct {
	T2 float64 `json:"t2_k"`
	P2 float64 `json:"p2_pa"`
	T3 float64 `json:"t3_k"`
	P3 float64 `json:"p3_pa"`
	T4 float64 `json:"t4_k"`
	P4 float64 `json:"p4_pa"`
	T5 float64 `json:"t5_k"`
	P5 float64 `json:"p5_pa"`

	ExitVelocity float64 `json:"v_exit_ms"`
	ExitMach     float64 `json:"m_exit"`
	Choked       bool    `json:"choked"` // nozzle operating at the sonic condition

	Thrust          float64 `json:"thrust_n"`
	SpecificImpulse float64 `json:"specific_impulse_s"`
	FuelFlow        float64 `json:"fuel_flow_kg_s"`
	CompressorWork  float64 `json:"compressor_work_j_kg"` // specific work absorbed by the compressor
}

// SweepResult is one evaluated point of a parameter sweep. Batch groups all
// points produced by a single sweep invocation so that repeated runs against
// the same database stay separable.
type SweepResult struct {
	Sweep     string         `json:"sweep"`     // sweep name (e.g. "temperature", "pressure_ratio")
	Batch     int64          `json:"batch"`     // batch identifier, unique per invocation
	Parameter string         `json:"parameter"` // swept parameter name
	Value     float64        `json:"value"`     // swept parameter value at this point
	Point     OperatingPoint `json:"operating_point"`
	Result    CycleResult    `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// FlightCondition is a named ambient condition imported from a flight
// condition table, usable as an operating point by name.
type FlightCondition struct {
	Name        string  `json:"name"`
	Altitude    float64 `json:"altitude_m"` // zero when the source row gave conditions directly
	Temperature float64 `json:"temperature_k"`
	Pressure    float64 `json:"pressure_pa"`
}

// OperatingPoint returns the condition as an evaluatable operating point.
func (fc *FlightCondition) OperatingPoint() OperatingPoint {
	return OperatingPoint{
		AmbientTemperature: fc.Temperature,
		AmbientPressure:    fc.Pressure,
	}
}
