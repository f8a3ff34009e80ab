package api

import (
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AnalyzeRequest asks the service to materialize and index a repository.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

func (r AnalyzeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL,
			validation.Required,
			is.URL,
			validation.By(githubURL),
		),
	)
}

// githubURL rejects anything that is not an HTTPS GitHub repository URL,
// before any backend work happens.
func githubURL(value any) error {
	raw, _ := value.(string)

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("must use http or https")
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host != "github.com" {
		return fmt.Errorf("must be a github.com repository URL")
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return fmt.Errorf("must include owner and repository name")
	}
	return nil
}

// ChatRequest is one conversational turn. A missing session id starts a new
// session bound to the repository.
type ChatRequest struct {
	RepoName  string `json:"repoName"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 8192)),
		validation.Field(&r.RepoName, validation.Required.When(r.SessionID == "")),
	)
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Response  string `json:"response"`
}
