// Package scoring computes explainable 0-100 compatibility scores between
// custodian agents and pending transport-security services.
// The package is pure computation: it never touches storage and every
// operation degrades to base scores instead of failing.
package scoring

import "time"

// StatusCompleted marks a historical service that finished normally.
// Only completed services count toward temporal proximity bonuses.
const StatusCompleted = "completed"

// AgentSource tags where a candidate profile came from. The engine
// branches on presence of optional attributes, never on nil checks of
// untagged fields.
type AgentSource string

const (
	// SourceRoster is an existing custodian on the active roster.
	SourceRoster AgentSource = "roster"
	// SourceCandidate is a prospective recruit under evaluation.
	SourceCandidate AgentSource = "candidate"
	// SourceHistorical is a profile derived purely from service history.
	SourceHistorical AgentSource = "historical"
)

// WeeklyAvailability is the structured weekly pattern a roster custodian
// declares. Absent patterns simply skip the day-of-week bonus.
type WeeklyAvailability struct {
	Weekdays bool `json:"weekdays"`
	Saturday bool `json:"saturday"`
	Sunday   bool `json:"sunday"`
}

// Agent is one candidate custodian being scored. Optional attributes are
// pointers: nil means "not declared", which is a valid input everywhere.
type Agent struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Source    AgentSource `json:"source"`
	Available bool        `json:"available"`

	Rating             *float64 `json:"rating,omitempty"`
	CompletedServices  *int32   `json:"completed_services,omitempty"`
	Certifications     []string `json:"certifications,omitempty"`
	OwnsVehicle        bool     `json:"owns_vehicle"`
	SecurityExperience bool     `json:"security_experience"`

	// PreferredZone is a gazetteer zone key; candidates only, empty means none.
	PreferredZone string              `json:"preferred_zone,omitempty"`
	Availability  *WeeklyAvailability `json:"availability,omitempty"`

	// Derived by the pattern analyzer from the agent's history; recomputed
	// whenever the history changes, never persisted by this package.
	FrequentPlaces       []string `json:"frequent_places,omitempty"`
	FrequentServiceTypes []string `json:"frequent_service_types,omitempty"`
}

// ServiceRequest describes one pending job to be staffed. Origin and
// destination are free text, not yet resolved to gazetteer places.
type ServiceRequest struct {
	Origin                   string    `json:"origin"`
	Destination              string    `json:"destination"`
	ScheduledAt              time.Time `json:"scheduled_at"`
	ServiceType              string    `json:"service_type"`
	RequiresArmedGuard       bool      `json:"requires_armed_guard"`
	RequiresSpecialEquipment bool      `json:"requires_special_equipment"`
}

// HistoricalRecord is one past service outcome supplied in bulk per agent.
type HistoricalRecord struct {
	AgentID     string    `json:"agent_id"`
	AgentName   string    `json:"agent_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	ServiceType string    `json:"service_type"`
	DistanceKm  int       `json:"distance_km,omitempty"`
}

// Completed reports whether the record finished normally.
func (r HistoricalRecord) Completed() bool {
	return r.Status == StatusCompleted
}

// ScoreDetails carries the optional facts the engine established while
// scoring, used by the explanation generator and the ranking UI.
type ScoreDetails struct {
	EstimatedKm           *int     `json:"estimated_km,omitempty"`
	SameZone              bool     `json:"same_zone"`
	HoursUntilService     *float64 `json:"hours_until_service,omitempty"`
	PreferredZoneMatch    bool     `json:"preferred_zone_match"`
	ServiceTypeExperience bool     `json:"service_type_experience"`
	VehicleAdvantage      bool     `json:"vehicle_advantage"`
}

// ScoreBreakdown is the engine output for one (agent, request) pair.
// Total is always the weighted sum of the three sub-scores, each clamped
// to [0,100] before weighting, with the result clamped again.
type ScoreBreakdown struct {
	AgentID     string       `json:"agent_id"`
	Total       int          `json:"total"`
	Temporal    int          `json:"temporal"`
	Geographic  int          `json:"geographic"`
	Operational int          `json:"operational"`
	Details     ScoreDetails `json:"details"`
	Reasons     []string     `json:"reasons"`
}

// Weights are the business weights combining the three sub-scores.
type Weights struct {
	Temporal    float64 `json:"temporal"`
	Geographic  float64 `json:"geographic"`
	Operational float64 `json:"operational"`
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Temporal:    0.40,
		Geographic:  0.35,
		Operational: 0.25,
	}
}
