package panels

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed predictions.yaml
var predictionsYAML []byte

// Prediction is one forecast card of the AI panel. Trend is up, down or
// stable.
type Prediction struct {
	Module         string  `yaml:"module" json:"module"`
	Metric         string  `yaml:"metric" json:"metric"`
	CurrentValue   float64 `yaml:"current_value" json:"currentValue"`
	PredictedValue float64 `yaml:"predicted_value" json:"predictedValue"`
	Confidence     int     `yaml:"confidence" json:"confidence"`
	Trend          string  `yaml:"trend" json:"trend"`
}

// Predictions is read-only; nothing recomputes the fixture values.
type Predictions struct {
	items []Prediction
}

func NewPredictions() (*Predictions, error) {
	var doc struct {
		Predictions []Prediction `yaml:"predictions"`
	}
	if err := yaml.Unmarshal(predictionsYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse predictions fixture: %w", err)
	}
	return &Predictions{items: doc.Predictions}, nil
}

func (p *Predictions) List() []Prediction {
	return append([]Prediction(nil), p.items...)
}
