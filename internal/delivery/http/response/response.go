package response

import (
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/usecase"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Scrape flattens a run into {jobId, results, <extra fields>}. Extra fields never
// shadow jobId or results.
func Scrape(res *usecase.RunResult) map[string]any {
	body := make(map[string]any, len(res.Extra)+2)
	for k, v := range res.Extra {
		body[k] = v
	}
	body["jobId"] = res.JobID
	if res.Results == nil {
		body["results"] = []entity.Item{}
	} else {
		body["results"] = res.Results
	}
	return body
}

// HealthResponse reports each dependency as "healthy" or "unhealthy".
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}
