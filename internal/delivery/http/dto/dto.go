package dto

import (
	"joblens/internal/analyze"
	"joblens/internal/posting"
	"joblens/internal/resume"
)

type ResumeUploadRequest struct {
	Text string `json:"text"`
}

type ResumeResponse struct {
	Parsed  resume.Resume `json:"parsed"`
	SavedAt string        `json:"savedAt"`
}

type ExtractRequest struct {
	HTML  string `json:"html"`
	URL   string `json:"url"`
	TabID string `json:"tabId"`
}

type ExtractResponse struct {
	Detected bool             `json:"detected"`
	Job      *posting.Posting `json:"job"`
}

type AnalyzeRequest struct {
	HTML  string `json:"html"`
	URL   string `json:"url"`
	TabID string `json:"tabId"`
}

type AnalyzeResponse struct {
	Result *analyze.Result `json:"result"`
	Cached bool            `json:"cached"`
	Quota  QuotaResponse   `json:"quota"`
}

type QuotaResponse struct {
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Date      string `json:"date"`
}

type HealthResponse struct {
	Status  string         `json:"status"`
	Backend *BackendHealth `json:"backend,omitempty"`
}

type BackendHealth struct {
	Reachable bool   `json:"reachable"`
	Service   string `json:"service,omitempty"`
	Status    string `json:"status,omitempty"`
}

type CacheClearResponse struct {
	Deleted int `json:"deleted"`
}

type HistoryItem struct {
	ID              string `json:"id"`
	JobTitle        string `json:"jobTitle"`
	Company         string `json:"company"`
	MatchPercentage int    `json:"matchPercentage"`
	URL             string `json:"url"`
	AnalyzedAt      string `json:"analyzedAt"`
}
