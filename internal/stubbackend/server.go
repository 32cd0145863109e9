// Package stubbackend is an in-memory stand-in for the lambda gateway
// backend. It serves POST /build/lambda and GET /apps so the console can be
// developed and tested without Docker. Nothing is built or run: a submitted
// request is recorded and immediately listed as a stopped app.
package stubbackend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"lambdagw/internal/deploy"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FirstPort is the first port handed out when a request omits one.
const FirstPort = 8001

// Options tweak the stub's responses.
type Options struct {
	// MisspelledSuccess answers with "succes" instead of "success", as some
	// backend releases do.
	MisspelledSuccess bool
	Logger            logrus.FieldLogger
}

// Server holds the registry. Safe for concurrent use.
type Server struct {
	opts   Options
	log    logrus.FieldLogger
	engine *gin.Engine

	mu       sync.Mutex
	apps     map[string]deploy.DeployedApp
	order    []string
	requests []deploy.BuildRequest
	nextPort int
	failures []string
}

type buildBody struct {
	ProjectPath string            `json:"project_path" binding:"required"`
	AppName     string            `json:"app_name" binding:"required"`
	Framework   string            `json:"framework" binding:"required"`
	EnvVars     map[string]string `json:"env_vars"`
	Port        *int              `json:"port"`
}

// New creates a stub server.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		opts:     opts,
		log:      log.WithField("component", "stubbackend"),
		apps:     make(map[string]deploy.DeployedApp),
		nextPort: FirstPort,
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.POST("/build/lambda", s.handleBuild)
	r.GET("/apps", s.handleApps)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// FailNext makes the next build request fail with msg. An empty msg fails
// without an "error" field.
func (s *Server) FailNext(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, msg)
}

// Requests returns the build requests received so far, in order.
func (s *Server) Requests() []deploy.BuildRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]deploy.BuildRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Apps returns the registry in submission order.
func (s *Server) Apps() []deploy.DeployedApp {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]deploy.DeployedApp, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.apps[name])
	}
	return out
}

func (s *Server) successKey() string {
	if s.opts.MisspelledSuccess {
		return "succes"
	}
	return "success"
}

func (s *Server) handleBuild(c *gin.Context) {
	var body buildBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	req := deploy.BuildRequest{
		ProjectPath: body.ProjectPath,
		AppName:     body.AppName,
		Framework:   deploy.Framework(body.Framework),
		EnvVars:     body.EnvVars,
		Port:        body.Port,
	}
	if err := s.register(req, baseURL(c.Request)); err != nil {
		resp := gin.H{s.successKey(): false}
		if err.Error() != "" {
			resp["error"] = err.Error()
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{s.successKey(): true})
}

func (s *Server) handleApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": s.Apps()})
}

// register records req and adds or replaces the app it names.
func (s *Server) register(req deploy.BuildRequest, base string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)

	if len(s.failures) > 0 {
		msg := s.failures[0]
		s.failures = s.failures[1:]
		return errors.New(msg)
	}
	if _, ok := deploy.ParseFramework(string(req.Framework)); !ok {
		return fmt.Errorf("unsupported framework: %s", req.Framework)
	}

	var port int
	if req.Port != nil {
		port = *req.Port
	} else {
		port = s.nextPort
		s.nextPort++
	}
	env := make(map[string]string, len(req.EnvVars)+1)
	for k, v := range req.EnvVars {
		env[k] = v
	}
	env["BASE_PATH"] = "/app/" + req.AppName

	if _, exists := s.apps[req.AppName]; !exists {
		s.order = append(s.order, req.AppName)
	}
	s.apps[req.AppName] = deploy.DeployedApp{
		AppName:   req.AppName,
		URL:       base + "/app/" + req.AppName,
		Port:      port,
		Framework: string(req.Framework),
		EnvVars:   env,
		Status:    "stopped",
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Info("request")
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return strings.TrimRight(fmt.Sprintf("%s://%s", scheme, r.Host), "/")
}
