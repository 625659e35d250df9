package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"schedsim/config"
	"schedsim/internal/history"
	"schedsim/internal/requests"
	"schedsim/internal/responses"
	"schedsim/internal/schedulers"
	"schedsim/internal/telemetry"
)

// SessionHeader identifies the client session used for run history.
// Requests without it are served normally but never recorded.
const SessionHeader = "X-Session-ID"

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Algorithms(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config  *config.Config
	history history.Store
	logger  zerolog.Logger
}

func NewSchedulerHandlerImpl(config *config.Config, store history.Store, logger zerolog.Logger) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{
		config:  config,
		history: store,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Schedule runs the algorithm named in the request body.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	return s.runSchedule(ctx, "")
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.runSchedule(ctx, schedulers.AlgorithmFCFS)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.runSchedule(ctx, schedulers.AlgorithmSJF)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.runSchedule(ctx, schedulers.AlgorithmPriority)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.runSchedule(ctx, schedulers.AlgorithmRR)
}

// runSchedule is the shared request flow: parse, resolve the algorithm
// (forced is non-empty on the per-algorithm routes and wins over the
// body), simulate, record history, respond.
func (s *SchedulerHandlerImpl) runSchedule(ctx *fiber.Ctx, forced schedulers.Algorithm) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format",
		})
	}

	algorithm := forced
	if algorithm == "" {
		parsed, err := schedulers.ParseAlgorithm(request.Algorithm)
		if err != nil {
			telemetry.ScheduleErrorsTotal.WithLabelValues(request.Algorithm, errorReason(err)).Inc()
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		algorithm = parsed
	}

	quantum := request.TimeQuantum
	if algorithm == schedulers.AlgorithmRR && quantum == 0 {
		quantum = s.config.RoundRobinTimeQuantum
	}

	result, err := schedulers.Schedule(algorithm, request.Specs(), quantum)
	if err != nil {
		telemetry.ScheduleErrorsTotal.WithLabelValues(string(algorithm), errorReason(err)).Inc()
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	telemetry.ScheduleRunsTotal.WithLabelValues(string(algorithm)).Inc()

	s.logger.Debug().
		Str("algorithm", string(algorithm)).
		Int("processes", len(request.Processes)).
		Int("total_time", result.TotalTime).
		Msg("schedule computed")

	response := responses.FromResult(result, quantum)
	s.recordHistory(ctx, request, response)
	return ctx.JSON(response)
}

// AllAlgorithms runs every policy against the same process set so
// clients can compare them side by side. Every process needs a
// priority, otherwise the whole comparison is rejected.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format",
		})
	}

	quantum := request.TimeQuantum
	if quantum == 0 {
		quantum = s.config.RoundRobinTimeQuantum
	}

	specs := request.Specs()
	comparison := responses.ComparisonResponse{
		Results: make([]responses.ScheduleResponse, 0, len(schedulers.Algorithms())),
	}
	for _, algorithm := range schedulers.Algorithms() {
		result, err := schedulers.Schedule(algorithm, specs, quantum)
		if err != nil {
			telemetry.ScheduleErrorsTotal.WithLabelValues(string(algorithm), errorReason(err)).Inc()
			return ctx.Status(statusFor(err)).JSON(fiber.Map{
				"error":     err.Error(),
				"algorithm": string(algorithm),
			})
		}
		telemetry.ScheduleRunsTotal.WithLabelValues(string(algorithm)).Inc()
		comparison.Results = append(comparison.Results, responses.FromResult(result, quantum))
	}

	return ctx.JSON(comparison)
}

// Algorithms lists the supported algorithm names.
func (s *SchedulerHandlerImpl) Algorithms(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"algorithms": schedulers.Algorithms()})
}

// History returns the caller's recent runs, newest first.
func (s *SchedulerHandlerImpl) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Get(SessionHeader)
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing " + SessionHeader + " header",
		})
	}

	records, err := s.history.List(ctx.UserContext(), sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session", sessionID).Msg("history lookup failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "history unavailable",
		})
	}
	return ctx.JSON(fiber.Map{"history": records, "count": len(records)})
}

// ClearHistory drops every stored run for the caller's session.
func (s *SchedulerHandlerImpl) ClearHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Get(SessionHeader)
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing " + SessionHeader + " header",
		})
	}

	if err := s.history.Clear(ctx.UserContext(), sessionID); err != nil {
		s.logger.Error().Err(err).Str("session", sessionID).Msg("history clear failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "history unavailable",
		})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// recordHistory appends the run to the caller's session history when a
// session header is present. Persistence failures are logged, never
// surfaced: the schedule itself succeeded.
func (s *SchedulerHandlerImpl) recordHistory(ctx *fiber.Ctx, request requests.ScheduleRequest, response responses.ScheduleResponse) {
	sessionID := ctx.Get(SessionHeader)
	if sessionID == "" || s.history == nil {
		return
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode history request")
		return
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode history result")
		return
	}

	rec := history.Record{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Algorithm:   response.Algorithm,
		TimeQuantum: response.TimeQuantum,
		CreatedAt:   time.Now().UTC(),
		Request:     requestJSON,
		Result:      responseJSON,
	}
	if err := s.history.Append(ctx.UserContext(), rec); err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Msg("failed to append history record")
	}
}

// statusFor maps engine errors onto HTTP status codes. Every validation
// failure is the caller's fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, schedulers.ErrUnsupportedAlgorithm),
		errors.Is(err, schedulers.ErrEmptyInput),
		errors.Is(err, schedulers.ErrMissingPriority),
		errors.Is(err, schedulers.ErrInvalidQuantum),
		errors.Is(err, schedulers.ErrInvalidProcess):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, schedulers.ErrUnsupportedAlgorithm):
		return "unsupported_algorithm"
	case errors.Is(err, schedulers.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, schedulers.ErrMissingPriority):
		return "missing_priority"
	case errors.Is(err, schedulers.ErrInvalidQuantum):
		return "invalid_quantum"
	case errors.Is(err, schedulers.ErrInvalidProcess):
		return "invalid_process"
	default:
		return "internal"
	}
}
