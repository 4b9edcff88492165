package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Input carries the eight water-quality parameters the model was trained
// on. Field names match the model service's feature names; bounds mirror
// its validation. All eight are required; pointer fields keep a literal 0
// distinguishable from an omitted parameter.
type Input struct {
	Temp          *float64 `json:"Temp" binding:"required,min=0,max=100"`
	DO            *float64 `json:"DO" binding:"required,min=0,max=50"`
	PH            *float64 `json:"pH" binding:"required,min=0,max=14"`
	Conductivity  *float64 `json:"Conductivity" binding:"required,min=0"`
	BOD           *float64 `json:"BOD" binding:"required,min=0"`
	Nitrate       *float64 `json:"Nitrate" binding:"required,min=0"`
	FecalColiform *float64 `json:"FecalColiform" binding:"required,min=0"`
	TotalColiform *float64 `json:"TotalColiform" binding:"required,min=0"`
}

// Values is the dereferenced parameter vector sent to the model service.
type Values struct {
	Temp          float64 `json:"Temp"`
	DO            float64 `json:"DO"`
	PH            float64 `json:"pH"`
	Conductivity  float64 `json:"Conductivity"`
	BOD           float64 `json:"BOD"`
	Nitrate       float64 `json:"Nitrate"`
	FecalColiform float64 `json:"FecalColiform"`
	TotalColiform float64 `json:"TotalColiform"`
}

// Values dereferences the input, treating unset fields as zero.
func (in Input) Values() Values {
	return Values{
		Temp:          deref(in.Temp),
		DO:            deref(in.DO),
		PH:            deref(in.PH),
		Conductivity:  deref(in.Conductivity),
		BOD:           deref(in.BOD),
		Nitrate:       deref(in.Nitrate),
		FecalColiform: deref(in.FecalColiform),
		TotalColiform: deref(in.TotalColiform),
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Response is the model service's prediction payload.
type Response struct {
	RiskLevel  string   `json:"riskLevel"`
	RiskScore  *float64 `json:"riskScore"`
	Confidence *float64 `json:"confidence"`
	Message    string   `json:"message"`
}

// Error is returned when the model service is unreachable or answers
// non-2xx. Detail carries the service's own description when present.
type Error struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction failed: %v", e.Err)
	}
	return fmt.Sprintf("prediction failed: model service returned %d: %s", e.StatusCode, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// defaultScores fills riskScore when the model service omits it.
var defaultScores = map[string]float64{
	"Low":    0,
	"Medium": 50,
	"High":   100,
}

// Client calls the external model service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 25 * time.Second},
	}
}

// Predict posts the parameter vector to the model service. The response is
// normalized so riskScore is always set: when the upstream omits it, the
// label's default score is used.
func (c *Client) Predict(ctx context.Context, input Input) (Response, error) {
	var out Response

	payload, err := json.Marshal(input.Values())
	if err != nil {
		return out, &Error{Err: fmt.Errorf("marshal input: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/predict", bytes.NewReader(payload))
	if err != nil {
		return out, &Error{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return out, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &Error{StatusCode: resp.StatusCode, Detail: extractDetail(body)}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &Error{Err: fmt.Errorf("decode response: %w", err)}
	}

	if out.RiskScore == nil {
		score := defaultScores[out.RiskLevel]
		if _, known := defaultScores[out.RiskLevel]; !known {
			score = 50
		}
		out.RiskScore = &score
	}

	return out, nil
}

// Healthy reports whether the model service answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return string(body)
}
