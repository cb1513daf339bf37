package domain

import "time"

// AIAlertRecord is a normalized row from the AI-alerts feed tab. Recomputed on
// every poll, never persisted by this service.
type AIAlertRecord struct {
	ID             string    `json:"id"`
	PubDate        string    `json:"pubDate"`
	RiskPercentage float64   `json:"riskPercentage"`
	TitleName      string    `json:"titleName"`
	Timestamp      time.Time `json:"timestamp"`
	Category       Category  `json:"category"`
	Severity       float64   `json:"severity"` // RiskPercentage / 100
	Resolved       bool      `json:"resolved"`
}

// RiskLabel maps a risk percentage to the display label used by the popup:
// >=80 critical, >=60 high, >=40 medium, else low.
func RiskLabel(riskPercentage float64) string {
	switch {
	case riskPercentage >= 80:
		return "CRITICAL"
	case riskPercentage >= 60:
		return "HIGH"
	case riskPercentage >= 40:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
