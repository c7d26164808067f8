// Package devicesim serves a simulated device over the device HTTP
// protocol. It wraps the in-memory device backend with a chi router, so the
// HTTP client backend, the CLI, and integration tests can run against a
// faithful device without hardware on the bench.
package devicesim

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tobheim/patchbay/internal/adapters/memory"
	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/internal/wire"
	"github.com/tobheim/patchbay/pkg/ports"
)

// Server exposes one simulated device.
type Server struct {
	device  *memory.Device
	logger  *slog.Logger
	metrics *metrics
	serial  string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSerial sets the serial reported by the describe endpoint.
func WithSerial(serial string) Option {
	return func(s *Server) {
		s.serial = serial
	}
}

// NewHandler builds the HTTP handler for a simulated device.
func NewHandler(device *memory.Device, opts ...Option) http.Handler {
	s := &Server{
		device:  device,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
		serial:  "SIM000",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/api/device/claim_ownership", s.claimOwnership)
	r.Post("/api/device/relinquish_ownership", s.relinquishOwnership)
	r.Get("/api/device/describe", s.describe)
	r.Get("/api/slots/get_instruments", s.getInstruments)
	r.Post("/api/slots/set_instrument", s.setInstrument)
	r.Get("/api/routing/get_connections", s.getConnections)
	r.Post("/api/routing/set_connections", s.setConnections)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) claimOwnership(w http.ResponseWriter, r *http.Request) {
	var body wire.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeInvalid(w, "malformed claim request")
		return
	}

	token, err := s.device.ClaimOwnership(r.Context(), ports.ClaimRequest{
		Force:      body.ForceConnect,
		IgnoreBusy: body.IgnoreBusy,
		Persist:    body.PersistState,
	})
	s.metrics.claims.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("ownership claimed", "force", body.ForceConnect, "persist", body.PersistState)
	s.writeData(w, wire.ClaimData{Token: token})
}

func (s *Server) relinquishOwnership(w http.ResponseWriter, r *http.Request) {
	if err := s.device.RelinquishOwnership(r.Context(), r.Header.Get(wire.ClientKeyHeader)); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("ownership relinquished")
	s.writeData(w, nil)
}

func (s *Server) describe(w http.ResponseWriter, r *http.Request) {
	spec := s.device.Spec()
	s.writeData(w, wire.DescribeData{
		Hardware: spec.Name,
		Platform: spec.ID,
		Slots:    spec.Slots,
		Serial:   s.serial,
	})
}

func (s *Server) getInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := s.device.GetInstruments(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wire.InstrumentsData{Instruments: instruments})
}

func (s *Server) setInstrument(w http.ResponseWriter, r *http.Request) {
	var body wire.SetInstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeInvalid(w, "malformed set_instrument request")
		return
	}

	err := s.device.SetInstrument(r.Context(), r.Header.Get(wire.ClientKeyHeader),
		body.Slot, body.Instrument, body.Settings)
	s.metrics.deployments.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("instrument deployed", "slot", body.Slot, "instrument", body.Instrument)
	s.writeData(w, nil)
}

func (s *Server) getConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := s.device.GetConnections(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wire.ConnectionsPayload{Connections: conns})
}

func (s *Server) setConnections(w http.ResponseWriter, r *http.Request) {
	var body wire.ConnectionsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeInvalid(w, "malformed set_connections request")
		return
	}

	err := s.device.SetConnections(r.Context(), r.Header.Get(wire.ClientKeyHeader), body.Connections)
	s.metrics.routingSets.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("routing updated", "connections", len(body.Connections))
	s.writeData(w, nil)
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	env := wire.Envelope{Success: true}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			s.logger.Error("encode response payload", "err", err)
			http.Error(w, "encoding failure", http.StatusInternalServerError)
			return
		}
		env.Data = payload
	}
	s.writeEnvelope(w, env)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.Warn("request rejected", "err", err)
	s.writeEnvelope(w, wire.Envelope{
		Code:     wire.ErrorCode(err),
		Messages: []string{err.Error()},
	})
}

func (s *Server) writeInvalid(w http.ResponseWriter, msg string) {
	s.writeEnvelope(w, wire.Envelope{
		Code:     wire.CodeInvalidParam,
		Messages: []string{msg},
	})
}

func (s *Server) writeEnvelope(w http.ResponseWriter, env wire.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error("encode response envelope", "err", err)
	}
}
