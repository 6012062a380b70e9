// Package owmtest serves a stand-in for the OpenWeatherMap current-weather
// endpoint on a loopback port, for tests that exercise the real HTTP path.
package owmtest

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Path is the route the stub answers on, matching the real API.
const Path = "/data/2.5/weather"

// Query holds the parameters of one received request.
type Query struct {
	Location  string
	AppID     string
	Units     string
	RequestID string
}

// Server is a fiber app answering Path with a configurable response.
type Server struct {
	app *fiber.App
	ln  net.Listener

	mu     sync.Mutex
	status int
	body   any
	delay  time.Duration
	hits   int
	last   Query
}

// NewServer starts a stub that answers 200 with London() until told otherwise.
// It is shut down when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("owmtest: listen: %v", err)
	}

	s := &Server{
		ln:     ln,
		status: fiber.StatusOK,
		body:   London(),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "owmtest",
		DisableStartupMessage: true,
	})
	s.app.Get(Path, s.currentWeather)

	go func() {
		_ = s.app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = s.app.ShutdownWithTimeout(2 * time.Second)
		_ = ln.Close()
	})
	return s
}

// URL is the full endpoint to hand to the fetcher.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String() + Path
}

// Respond sets the status and JSON body of later responses.
func (s *Server) Respond(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Delay holds every later response for d.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Hits returns the number of requests served.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// LastQuery returns the parameters of the most recent request.
func (s *Server) LastQuery() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Server) currentWeather(c *fiber.Ctx) error {
	s.mu.Lock()
	s.hits++
	// fiber reuses request buffers once the handler returns
	s.last = Query{
		Location:  strings.Clone(c.Query("q")),
		AppID:     strings.Clone(c.Query("appid")),
		Units:     strings.Clone(c.Query("units")),
		RequestID: strings.Clone(c.Get("X-Request-Id")),
	}
	status, body, delay := s.status, s.body, s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if raw, ok := body.(string); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).SendString(raw)
	}
	return c.Status(status).JSON(body)
}
