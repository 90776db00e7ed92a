package cancellation

type Status string

const (
	OK     Status = "OK"
	Failed Status = "FAILED"
)

type Request struct {
	GithubRunID      string `json:"githubRunId"`
	GithubRunAttempt string `json:"githubRunAttempt"`
}

type RunCancellation struct {
	Actor            string `json:"actor"`
	CanceledAt       string `json:"canceledAt"`
	Reason           string `json:"reason"`
	GithubRunID      string `json:"githubRunId"`
	GithubRunAttempt string `json:"githubRunAttempt"`
}

type Result struct {
	Status Status           `json:"status"`
	Data   *RunCancellation `json:"data,omitempty"`
}
