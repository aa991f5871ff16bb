package recommendations

import (
	"context"
	"encoding/json"
	"time"

	"garden-backend/internal/llm"
	"garden-backend/internal/requestlog"
	"garden-backend/internal/shared/metrics"
	"garden-backend/internal/shared/telemetry"
)

// GeneratedBy tags responses produced by the agent backend.
const GeneratedBy = "genai_agent"

// Service runs a recommendation request end to end: derive context, build the
// prompt, call the gateway, parse the reply, and record the outcome.
type Service struct {
	LLM  llm.Client
	Logs *requestlog.Service

	// Now is the clock used for season derivation; nil means time.Now.
	Now func() time.Time
}

// Recommend processes one request. Exactly one log record is written per call,
// success or failure, without blocking the caller's response.
func (s *Service) Recommend(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	metrics.IncRecommendationStarted()

	resp, err := s.recommend(ctx, req)

	elapsed := time.Since(start)
	metrics.ObserveRecommendationDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncRecommendationFailed()
	} else {
		metrics.IncRecommendationCompleted()
	}

	s.logOutcome(req, resp, err, elapsed)
	return resp, err
}

func (s *Service) recommend(ctx context.Context, req Request) (Response, error) {
	if !s.LLM.Configured() {
		return Response{}, llm.ErrNotConfigured
	}

	zone := HardinessZone(req.Location)
	season := Season(s.now())
	sunLevel := SunLevel(req.Direction)
	prompt := BuildPrompt(req, zone, season, sunLevel)

	telemetry.Info("recommendations.gateway_call", map[string]any{
		"location": req.Location,
		"zone":     zone,
		"season":   season,
	})

	// Detached from client cancellation: an abandoned request lets the
	// upstream call run to completion or its own timeout.
	raw, err := s.LLM.Complete(context.WithoutCancel(ctx), prompt)
	if err != nil {
		return Response{}, err
	}

	resp, err := ParseCompletion(raw, req.Location, season)
	if err != nil {
		return Response{}, err
	}
	resp.GeneratedBy = GeneratedBy

	telemetry.Info("recommendations.generated", map[string]any{
		"location":    req.Location,
		"plant_count": len(resp.Plants),
	})
	return resp, nil
}

// logOutcome writes the audit record in the background. A failure there must
// never reach the already-decided response.
func (s *Service) logOutcome(req Request, resp Response, reqErr error, elapsed time.Duration) {
	if s.Logs == nil {
		return
	}

	rec := requestlog.Record{
		Timestamp:        time.Now().UTC(),
		Location:         req.Location,
		Direction:        req.Direction,
		Water:            req.Water,
		Maintenance:      req.Maintenance,
		GardenType:       req.GardenType,
		Success:          reqErr == nil,
		ProcessingTimeMs: int(elapsed.Milliseconds()),
	}
	if reqErr != nil {
		rec.ErrorMessage = reqErr.Error()
	} else {
		rec.PlantCount = len(resp.Plants)
		rec.Season = resp.Season
		if payload, err := json.Marshal(resp); err == nil {
			rec.ResponseJSON = string(payload)
		}
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				telemetry.Error("requestlog.write_panic", map[string]any{"error": r})
			}
		}()
		s.Logs.Write(context.Background(), rec)
	}()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
