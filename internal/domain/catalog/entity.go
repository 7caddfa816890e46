package catalog

// JobRecord is one read-only entry of the job catalog. The shape mirrors
// the sample catalog JSON; every field except Title may be absent.
type JobRecord struct {
	ExternalID string   `json:"id"`
	Source     string   `json:"source"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	SalaryMin  *float64 `json:"salary_min"`
	SalaryMax  *float64 `json:"salary_max"`
	RemoteType string   `json:"remote_type"`
	Skills     []string `json:"skills"`
	Culture    []string `json:"culture"`
	URL        string   `json:"url"`
	Notes      string   `json:"notes"`
}

const DefaultSource = "sample"

func (j JobRecord) SourceOrDefault() string {
	if j.Source == "" {
		return DefaultSource
	}
	return j.Source
}
