// Package composer holds the state of the build request form: the raw field
// values, their validation and conversion into a deploy.BuildRequest, and
// the submission lifecycle (idle, submitting, failed).
package composer

import (
	"errors"
	"fmt"

	"lambdagw/internal/deploy"
	"lambdagw/internal/envvars"
)

// ErrSubmitting is returned by Begin while a submission is in flight.
var ErrSubmitting = errors.New("a submission is already in flight")

// ValidationError reports a required field that is empty or invalid.
// No request is sent when Begin returns one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Phase is the submission lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSubmitting:
		return "Submitting"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State is the submission state. Message is set only in PhaseFailed.
type State struct {
	Phase   Phase
	Message string
}

// Fields are the raw form values as typed.
type Fields struct {
	ProjectPath string
	AppName     string
	Framework   string // "" until the user picks one
	Port        string
	EnvVars     envvars.List
}

// EmptyFields returns the initial form values.
func EmptyFields() Fields {
	return Fields{EnvVars: envvars.New()}
}

// Form owns the fields and the submission state.
type Form struct {
	Fields Fields
	state  State
}

// NewForm returns an idle form with empty fields.
func NewForm() *Form {
	return &Form{Fields: EmptyFields()}
}

// State returns the current submission state.
func (f *Form) State() State {
	return f.state
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	return f.state.Phase == PhaseSubmitting
}

// Validate checks the required fields. Path and name only need to be
// non-empty; whitespace is accepted as typed.
func (f Fields) Validate() error {
	if f.ProjectPath == "" {
		return &ValidationError{Field: "project_path", Reason: "required"}
	}
	if f.AppName == "" {
		return &ValidationError{Field: "app_name", Reason: "required"}
	}
	if f.Framework == "" {
		return &ValidationError{Field: "framework", Reason: "required"}
	}
	if _, ok := deploy.ParseFramework(f.Framework); !ok {
		return &ValidationError{Field: "framework", Reason: fmt.Sprintf("unsupported value %q", f.Framework)}
	}
	return nil
}

// Request converts the fields to a BuildRequest after validating them.
func (f Fields) Request() (deploy.BuildRequest, error) {
	if err := f.Validate(); err != nil {
		return deploy.BuildRequest{}, err
	}
	fw, _ := deploy.ParseFramework(f.Framework)
	return deploy.BuildRequest{
		ProjectPath: f.ProjectPath,
		AppName:     f.AppName,
		Framework:   fw,
		EnvVars:     f.EnvVars.ToMap(),
		Port:        ParsePort(f.Port),
	}, nil
}

// Begin starts a submission. It returns ErrSubmitting if one is already in
// flight, or a *ValidationError if the fields are incomplete; in both cases
// the state is left unchanged. Otherwise the state moves to Submitting, any
// previous failure message is cleared, and the request to send is returned.
func (f *Form) Begin() (deploy.BuildRequest, error) {
	if f.Submitting() {
		return deploy.BuildRequest{}, ErrSubmitting
	}
	req, err := f.Fields.Request()
	if err != nil {
		return deploy.BuildRequest{}, err
	}
	f.state = State{Phase: PhaseSubmitting}
	return req, nil
}

// Finish records the backend's answer to the in-flight submission. On
// success the fields are reset and true is returned so the owner can
// refresh and close. On failure the fields are kept for correction.
// Finish is a no-op returning false when nothing is in flight.
func (f *Form) Finish(res deploy.SubmitResult) bool {
	if !f.Submitting() {
		return false
	}
	if res.OK {
		f.Fields = EmptyFields()
		f.state = State{Phase: PhaseIdle}
		return true
	}
	msg := res.Message
	if msg == "" {
		msg = deploy.MsgBuildFailed
	}
	f.state = State{Phase: PhaseFailed, Message: msg}
	return false
}
