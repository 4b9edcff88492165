package types

// SensorReading is one tick of the synthetic water-quality sensor. Field
// names follow the model service's feature names.
type SensorReading struct {
	Timestamp     string  `json:"timestamp"`
	Temp          float64 `json:"Temp"`
	DO            float64 `json:"DO"`
	PH            float64 `json:"pH"`
	Conductivity  float64 `json:"Conductivity"`
	BOD           float64 `json:"BOD"`
	Nitrate       float64 `json:"Nitrate"`
	FecalColiform float64 `json:"FecalColiform"`
	TotalColiform float64 `json:"TotalColiform"`
}
