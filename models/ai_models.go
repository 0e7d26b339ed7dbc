package models

import "time"

// AiAnalysis contains the qualitative insights from the Gemini model.
type AiAnalysis struct {
	Summary           string   `json:"summary"`
	RestockPriorities []string `json:"restock_priorities"`
	Risks             []string `json:"risks"`
}

// ForecastInsightsResponse is the complete structure for the forecast insights API response.
type ForecastInsightsResponse struct {
	ReportName  string         `json:"reportName"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Period      ForecastPeriod `json:"forecastPeriod"`
	Products    int            `json:"products"`
	AiAnalysis  AiAnalysis     `json:"aiAnalysis"`
}
