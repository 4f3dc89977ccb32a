package models

type BatchRunResponse struct {
	RunDate   string `json:"runDate"`
	Succeeded int    `json:"succeeded"`
	Skipped   int    `json:"skipped"`
	Errored   int    `json:"errored"`
}
