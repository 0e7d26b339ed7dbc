// Package insights asks Gemini for a short written analysis of a forecast run.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"stocksmart/models"
	"stocksmart/utils"
)

// ErrDisabled is returned when no Gemini API key is configured.
var ErrDisabled = errors.New("AI insights are not configured")

// Generator is implemented by *genai.GenerativeModel.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client creates Gemini models on demand.
type Client struct {
	apiKey string
	model  string
}

// NewClient creates a Client. An empty apiKey disables it.
func NewClient(apiKey, model string) *Client {
	return &Client{apiKey: apiKey, model: model}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Analyze asks Gemini to summarize result.
func (c *Client) Analyze(ctx context.Context, result *models.ForecastResult) (*models.ForecastInsightsResponse, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AI service: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0.2)
	return Analyze(ctx, model, result, time.Now())
}

// Analyze builds the prompt for result, sends it to gen and parses the reply.
func Analyze(ctx context.Context, gen Generator, result *models.ForecastResult, generatedAt time.Time) (*models.ForecastInsightsResponse, error) {
	resp, err := gen.GenerateContent(ctx, genai.Text(ConstructPrompt(result)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}

	analysis, err := ParseResponse(resp)
	if err != nil {
		return nil, err
	}

	return &models.ForecastInsightsResponse{
		ReportName:  "Stock Prediction Insights",
		GeneratedAt: generatedAt,
		Period:      result.Period,
		Products:    len(result.Forecasts),
		AiAnalysis:  analysis,
	}, nil
}

// ConstructPrompt describes the forecast in plain text and asks for a JSON reply.
func ConstructPrompt(result *models.ForecastResult) string {
	var rows strings.Builder
	for _, fc := range result.Forecasts {
		fmt.Fprintf(&rows, "- %s: predicted demand %d units (range %s), recommended stock %d, trend %s, projected revenue %s\n",
			fc.ProductName, fc.PredictedDemand, fc.ConfidenceRange, fc.RecommendedStock, fc.TrendLabel,
			utils.FormatRevenue(fc.ProjectedRevenue))
	}
	if rows.Len() == 0 {
		rows.WriteString("No product has enough sales history for a forecast.\n")
	}

	jsonFormat := `{"summary":"string","restock_priorities":["string",...],"risks":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail inventory analyst. Review next month's stock predictions for a small shop and give brief, practical advice.

        **Forecast Period:** %s
        **Total Stock Needed:** %d units
        **Products with Increasing Demand:** %d

        **Predictions:**
        %s
        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, result.Period.Label, result.Summary.TotalRecommendedStock, result.Summary.IncreasingProducts, rows.String(), jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// ParseResponse extracts the JSON analysis from a Gemini reply.
func ParseResponse(resp *genai.GenerateContentResponse) (models.AiAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.AiAnalysis{}, fmt.Errorf("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return models.AiAnalysis{}, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		log.Printf("[INSIGHTS] could not extract JSON from Gemini response: %s", text)
		return models.AiAnalysis{}, fmt.Errorf("failed to parse AI response format")
	}

	var analysis models.AiAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		log.Printf("[INSIGHTS] error parsing Gemini JSON: %v, raw JSON: %s", err, jsonStr)
		return models.AiAnalysis{}, fmt.Errorf("failed to parse AI insights data")
	}
	return analysis, nil
}
