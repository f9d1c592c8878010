package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/manuchak/detecta-core-sub015/scoring"
)

type weeklyAvailabilityRequest struct {
	Weekdays bool `json:"weekdays"`
	Saturday bool `json:"saturday"`
	Sunday   bool `json:"sunday"`
}

type rankAgentRequest struct {
	ID                 string                     `json:"id" binding:"required"`
	Name               string                     `json:"name"`
	Source             string                     `json:"source" binding:"omitempty,oneof=roster candidate historical"`
	Available          bool                       `json:"available"`
	Rating             *float64                   `json:"rating" binding:"omitempty,min=0,max=5"`
	CompletedServices  *int32                     `json:"completed_services" binding:"omitempty,min=0"`
	Certifications     []string                   `json:"certifications"`
	OwnsVehicle        bool                       `json:"owns_vehicle"`
	SecurityExperience bool                       `json:"security_experience"`
	PreferredZone      string                     `json:"preferred_zone"`
	Availability       *weeklyAvailabilityRequest `json:"availability"`
}

type rankServiceRequest struct {
	Origin                   string    `json:"origin" binding:"required"`
	Destination              string    `json:"destination" binding:"required"`
	ScheduledAt              time.Time `json:"scheduled_at" binding:"required"`
	ServiceType              string    `json:"service_type"`
	RequiresArmedGuard       bool      `json:"requires_armed_guard"`
	RequiresSpecialEquipment bool      `json:"requires_special_equipment"`
}

type rankHistoryRecord struct {
	OccurredAt  time.Time `json:"occurred_at" binding:"required"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	ServiceType string    `json:"service_type"`
	DistanceKm  int       `json:"distance_km"`
}

type rankRequest struct {
	Service rankServiceRequest             `json:"service" binding:"required"`
	Agents  []rankAgentRequest             `json:"agents" binding:"required,min=1,max=500,dive"`
	History map[string][]rankHistoryRecord `json:"history"`
}

type rankedAgentResponse struct {
	Position   int                    `json:"position"`
	AgentID    string                 `json:"agent_id"`
	AgentName  string                 `json:"agent_name,omitempty"`
	Breakdown  scoring.ScoreBreakdown `json:"breakdown"`
	FreqPlaces []string               `json:"frequent_places,omitempty"`
}

type rankResponse struct {
	RankingID         string                `json:"ranking_id"`
	ResolvedOrigin    *string               `json:"resolved_origin"`
	ResolvedDest      *string               `json:"resolved_destination"`
	Agents            []rankedAgentResponse `json:"agents"`
	EvaluatedAt       string                `json:"evaluated_at"`
	EvaluationTimeMs  int64                 `json:"evaluation_time_ms"`
	CandidatesScored  int                   `json:"candidates_scored"`
}

// rankAgents scores every candidate against the service request and
// returns them ordered by compatibility.
func (server *Server) rankAgents(ctx *gin.Context) {
	var req rankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	service := scoring.ServiceRequest{
		Origin:                   req.Service.Origin,
		Destination:              req.Service.Destination,
		ScheduledAt:              req.Service.ScheduledAt,
		ServiceType:              req.Service.ServiceType,
		RequiresArmedGuard:       req.Service.RequiresArmedGuard,
		RequiresSpecialEquipment: req.Service.RequiresSpecialEquipment,
	}

	agents := make([]scoring.Agent, len(req.Agents))
	for i, a := range req.Agents {
		agents[i] = toScoringAgent(a)
	}

	history := make(map[string][]scoring.HistoricalRecord, len(req.History))
	for agentID, records := range req.History {
		converted := make([]scoring.HistoricalRecord, len(records))
		for i, rec := range records {
			converted[i] = scoring.HistoricalRecord{
				AgentID:     agentID,
				OccurredAt:  rec.OccurredAt,
				Origin:      rec.Origin,
				Destination: rec.Destination,
				Status:      rec.Status,
				ServiceType: rec.ServiceType,
				DistanceKm:  rec.DistanceKm,
			}
		}
		history[agentID] = converted
	}

	start := time.Now()
	ranked, err := server.ranker.Rank(ctx.Request.Context(), service, agents, history)
	if err != nil {
		ctx.JSON(http.StatusGatewayTimeout, errorResponse(err))
		return
	}
	elapsed := time.Since(start)
	RecordRanking(len(ranked), elapsed)

	originKey := server.resolvedKey(service.Origin)
	destKey := server.resolvedKey(service.Destination)

	out := make([]rankedAgentResponse, len(ranked))
	for i, r := range ranked {
		out[i] = rankedAgentResponse{
			Position:   i + 1,
			AgentID:    r.Agent.ID,
			AgentName:  r.Agent.Name,
			Breakdown:  r.Breakdown,
			FreqPlaces: r.Agent.FrequentPlaces,
		}
	}

	rankingID := uuid.New().String()
	log.Info().
		Str("ranking_id", rankingID).
		Int("candidates", len(ranked)).
		Dur("elapsed", elapsed).
		Msg("ranking served")

	ctx.JSON(http.StatusOK, rankResponse{
		RankingID:        rankingID,
		ResolvedOrigin:   originKey,
		ResolvedDest:     destKey,
		Agents:           out,
		EvaluatedAt:      time.Now().Format(time.RFC3339),
		EvaluationTimeMs: elapsed.Milliseconds(),
		CandidatesScored: len(ranked),
	})
}

// resolvedKey probes the gazetteer and records the outcome metric.
func (server *Server) resolvedKey(text string) *string {
	place, ok := server.gaz.Resolve(text)
	RecordPlaceResolution(ok)
	if !ok {
		return nil
	}
	key := place.Key
	return &key
}

func toScoringAgent(a rankAgentRequest) scoring.Agent {
	source := scoring.AgentSource(a.Source)
	if source == "" {
		source = scoring.SourceRoster
	}

	agent := scoring.Agent{
		ID:                 a.ID,
		Name:               a.Name,
		Source:             source,
		Available:          a.Available,
		Rating:             a.Rating,
		CompletedServices:  a.CompletedServices,
		Certifications:     a.Certifications,
		OwnsVehicle:        a.OwnsVehicle,
		SecurityExperience: a.SecurityExperience,
		PreferredZone:      a.PreferredZone,
	}
	if a.Availability != nil {
		agent.Availability = &scoring.WeeklyAvailability{
			Weekdays: a.Availability.Weekdays,
			Saturday: a.Availability.Saturday,
			Sunday:   a.Availability.Sunday,
		}
	}
	return agent
}
