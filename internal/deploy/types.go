// Package deploy talks to the lambda gateway backend: it submits build
// requests and lists the applications the backend reports as deployed.
package deploy

// Framework is the application framework the backend builds for.
type Framework string

const (
	FrameworkNextJS Framework = "nextjs"
	FrameworkVite   Framework = "vite"
)

// Frameworks lists the accepted values in display order.
var Frameworks = []Framework{FrameworkNextJS, FrameworkVite}

// ParseFramework returns the Framework for s, or false if s is not one of
// Frameworks. Matching is exact.
func ParseFramework(s string) (Framework, bool) {
	for _, f := range Frameworks {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Label returns the human-readable name.
func (f Framework) Label() string {
	switch f {
	case FrameworkNextJS:
		return "Next.js"
	case FrameworkVite:
		return "Vite"
	default:
		return string(f)
	}
}

// BuildRequest is the payload of POST /build/lambda.
// A nil Port serializes as null and lets the backend pick one.
type BuildRequest struct {
	ProjectPath string            `json:"project_path"`
	AppName     string            `json:"app_name"`
	Framework   Framework         `json:"framework"`
	EnvVars     map[string]string `json:"env_vars"`
	Port        *int              `json:"port"`
}

// DeployedApp is one entry of GET /apps.
type DeployedApp struct {
	AppName   string            `json:"app_name"`
	URL       string            `json:"url"`
	Port      int               `json:"port"`
	Framework string            `json:"framework"`
	EnvVars   map[string]string `json:"env_vars"`
	Status    string            `json:"status,omitempty"` // running, stopped; empty if not reported
}

// SubmitResult is the normalized outcome of a build submission.
// Message is empty when OK is true.
type SubmitResult struct {
	OK      bool
	Message string
}

// User-facing failure messages.
const (
	MsgBuildFailed  = "Failed to build application"
	MsgSubmitFailed = "Failed to submit build request"
)
