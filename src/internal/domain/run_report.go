package domain

// RunReport summarizes one batch run. Skips are not errors: they cover
// idempotency hits, out-of-range dates and zero computed interest.
type RunReport struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Errored   int `json:"errored"`
}

func (r RunReport) Total() int {
	return r.Succeeded + r.Skipped + r.Errored
}

// Merge folds another report into this one.
func (r RunReport) Merge(other RunReport) RunReport {
	return RunReport{
		Succeeded: r.Succeeded + other.Succeeded,
		Skipped:   r.Skipped + other.Skipped,
		Errored:   r.Errored + other.Errored,
	}
}
