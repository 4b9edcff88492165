package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-aware/predict"
)

const (
	maxDiseases        = 3
	maxRecommendations = 4
)

// Advisory is the narrative payload rendered next to the ML risk output.
type Advisory struct {
	Diseases        []string `json:"diseases"`
	Recommendations []string `json:"recommendations"`
	Fallback        bool     `json:"fallback"`
}

// ParseError means the model's response was not the expected JSON shape.
// Callers serve the fixed fallback advisory instead of failing the display.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("narrative response unusable: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// fallbackAdvisory is served whenever the completion API fails or returns
// something unparseable: safe general guidance, no disease speculation.
func fallbackAdvisory() Advisory {
	return Advisory{
		Diseases: []string{},
		Recommendations: []string{
			"Boil water for at least one minute before drinking.",
			"Use chlorine tablets or a certified filter for stored water.",
			"Seek medical attention for persistent diarrhoea or fever.",
			"Report unusual water colour or odour to local health officials.",
		},
		Fallback: true,
	}
}

// Generate asks the completion service for likely waterborne diseases and
// recommendations for the given water-quality values and model prediction.
// It never fails the caller: on any API or parse error the fixed fallback
// advisory is returned alongside the error for logging.
func Generate(ctx context.Context, client *openai.Client, input predict.Input, prediction predict.Response) (Advisory, error) {
	prompt := buildPrompt(input, prediction)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a public-health assistant for rural water-quality monitoring. Answer only with the requested JSON object.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   300,
			Temperature: 0.3,
		},
	)
	if err != nil {
		log.Printf("Narrative completion failed, serving fallback: %v", err)
		return fallbackAdvisory(), &ParseError{Err: err}
	}
	if len(resp.Choices) == 0 {
		log.Printf("Narrative completion returned no choices, serving fallback")
		return fallbackAdvisory(), &ParseError{Err: fmt.Errorf("empty choices")}
	}

	advisory, err := parseAdvisory(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("Narrative response unparseable, serving fallback: %v", err)
		return fallbackAdvisory(), err
	}
	return advisory, nil
}

func buildPrompt(input predict.Input, prediction predict.Response) string {
	score := 0.0
	if prediction.RiskScore != nil {
		score = *prediction.RiskScore
	}
	v := input.Values()
	return fmt.Sprintf(
		"Water quality readings: temperature %.1f C, dissolved oxygen %.1f mg/L, pH %.1f, conductivity %.0f umhos/cm, BOD %.1f mg/L, nitrate %.2f mg/L, fecal coliform %.0f MPN/100ml, total coliform %.0f MPN/100ml. "+
			"The trained model rated this %s risk (score %.1f). "+
			"Respond with a JSON object of the form {\"diseases\": [...], \"recommendations\": [...]} listing at most %d likely waterborne diseases and at most %d practical recommendations for village health workers.",
		v.Temp, v.DO, v.PH, v.Conductivity, v.BOD, v.Nitrate,
		v.FecalColiform, v.TotalColiform,
		prediction.RiskLevel, score, maxDiseases, maxRecommendations,
	)
}

// parseAdvisory extracts the JSON object from the completion text. Models
// often wrap JSON in markdown fences; strip those before decoding.
func parseAdvisory(content string) (Advisory, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var payload struct {
		Diseases        []string `json:"diseases"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return Advisory{}, &ParseError{Err: err}
	}
	if payload.Diseases == nil && payload.Recommendations == nil {
		return Advisory{}, &ParseError{Err: fmt.Errorf("missing diseases and recommendations fields")}
	}

	if len(payload.Diseases) > maxDiseases {
		payload.Diseases = payload.Diseases[:maxDiseases]
	}
	if len(payload.Recommendations) > maxRecommendations {
		payload.Recommendations = payload.Recommendations[:maxRecommendations]
	}
	if payload.Diseases == nil {
		payload.Diseases = []string{}
	}
	if payload.Recommendations == nil {
		payload.Recommendations = []string{}
	}

	return Advisory{
		Diseases:        payload.Diseases,
		Recommendations: payload.Recommendations,
	}, nil
}
