package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/manuchak/detecta-core-sub015/gazetteer"
)

// Every bonus below is a hard-coded business rule. The values and the clamp
// order are load-bearing: downstream ranking and the documented scenarios
// depend on them exactly.
const (
	temporalBase    = 30
	geographicBase  = 20
	operationalBase = 25

	scoreMin = 0
	scoreMax = 100

	// Temporal: day-of-week availability.
	bonusWeekdayAvailable  = 15
	bonusSaturdayAvailable = 10
	bonusSundayAvailable   = 5

	// Temporal: gap in hours between a completed service and the new
	// request. Bands partition [1,8]; the first record landing in any band
	// ends the scan.
	gapMinHours       = 1.0
	gapMaxHours       = 8.0
	gapTightLow       = 2.0
	gapTightHigh      = 4.0
	bonusGapTight     = 30 // 2-4h: ideal turnaround
	bonusGapComfort   = 20 // 4-8h
	bonusGapImmediate = 10 // 1-2h

	// Geographic.
	bonusPreferredZoneOrigin      = 25
	bonusPreferredZoneDestination = 15
	bonusFrequentOrigin           = 35
	bonusFrequentDestination      = 25
	bonusFrequentSameZone         = 15
	bonusDistanceNear             = 20 // < 30 km
	bonusDistanceMid              = 10 // < 100 km
	bonusDistanceFar              = 5  // < 200 km
	penaltyDistanceRemote         = -5
	distanceNearKm                = 30
	distanceMidKm                 = 100
	distanceFarKm                 = 200

	// Operational.
	bonusSecurityExperience = 15
	bonusArmedService       = 10
	bonusOwnsVehicle        = 10
	bonusEquipmentFit       = 5
	bonusRatingExcellent    = 20 // >= 4.5
	bonusRatingGood         = 15 // >= 4.0
	bonusRatingFair         = 10 // >= 3.5
	bonusVolumeHigh         = 15 // >= 50 services
	bonusVolumeMid          = 10 // >= 20
	bonusVolumeLow          = 5  // >= 10
	bonusPerCertification   = 2
	maxCertificationBonus   = 10
	bonusSecurityCert       = 10
)

// relocationKeywords flag service types whose logistics favor agents with
// their own vehicle.
var relocationKeywords = []string{"mudanza", "traslado", "relocation", "transfer"}

// securityCertKeywords flag certifications relevant to armed services.
var securityCertKeywords = []string{"seguridad", "arma", "custodia", "security", "weapon", "custody"}

// Engine computes compatibility scores. It holds only immutable state and
// is safe for unbounded concurrent use.
type Engine struct {
	gaz     *gazetteer.Gazetteer
	weights Weights
}

// NewEngine creates an Engine over the injected gazetteer and weights.
func NewEngine(gaz *gazetteer.Gazetteer, weights Weights) *Engine {
	return &Engine{gaz: gaz, weights: weights}
}

// Score evaluates one (agent, request) pair. history must already be
// filtered to this agent's records; it feeds only the "just finished a
// nearby service" temporal bonus. Score never fails: unresolved places,
// missing optional attributes and empty histories all degrade to the base
// scores.
func (e *Engine) Score(agent Agent, req ServiceRequest, history []HistoricalRecord) ScoreBreakdown {
	details := ScoreDetails{}

	temporal := e.temporalScore(agent, req, history, &details)
	geographic := e.geographicScore(agent, req, &details)
	operational := e.operationalScore(agent, req, &details)

	total := clampScore(int(math.Round(
		float64(temporal)*e.weights.Temporal +
			float64(geographic)*e.weights.Geographic +
			float64(operational)*e.weights.Operational,
	)))

	breakdown := ScoreBreakdown{
		AgentID:     agent.ID,
		Total:       total,
		Temporal:    temporal,
		Geographic:  geographic,
		Operational: operational,
		Details:     details,
	}
	breakdown.Reasons = Explain(breakdown, agent)
	return breakdown
}

// temporalScore rewards declared weekly availability and a completed
// service shortly before the new request.
func (e *Engine) temporalScore(agent Agent, req ServiceRequest, history []HistoricalRecord, details *ScoreDetails) int {
	score := temporalBase

	if avail := agent.Availability; avail != nil {
		switch req.ScheduledAt.Weekday() {
		case time.Saturday:
			if avail.Saturday {
				score += bonusSaturdayAvailable
			}
		case time.Sunday:
			if avail.Sunday {
				score += bonusSundayAvailable
			}
		default:
			if avail.Weekdays {
				score += bonusWeekdayAvailable
			}
		}
	}

	for _, rec := range history {
		if !rec.Completed() {
			continue
		}
		gap := req.ScheduledAt.Sub(rec.OccurredAt).Hours()
		if gap < gapMinHours || gap > gapMaxHours {
			continue
		}
		switch {
		case gap >= gapTightLow && gap <= gapTightHigh:
			score += bonusGapTight
		case gap > gapTightHigh:
			score += bonusGapComfort
		default:
			score += bonusGapImmediate
		}
		hours := gap
		details.HoursUntilService = &hours
		break
	}

	return clampScore(score)
}

// geographicScore rewards overlap between the request's route and the
// agent's preferred zone and frequent operating places.
func (e *Engine) geographicScore(agent Agent, req ServiceRequest, details *ScoreDetails) int {
	score := geographicBase

	origin, originOK := e.gaz.Resolve(req.Origin)
	destination, destOK := e.gaz.Resolve(req.Destination)

	if agent.PreferredZone != "" {
		if originOK && e.gaz.ZoneContains(agent.PreferredZone, origin.Key) {
			score += bonusPreferredZoneOrigin
			details.PreferredZoneMatch = true
		} else if destOK && e.gaz.ZoneContains(agent.PreferredZone, destination.Key) {
			score += bonusPreferredZoneDestination
			details.PreferredZoneMatch = true
		}
	}

	if len(agent.FrequentPlaces) > 0 {
		if originOK && containsPlace(agent.FrequentPlaces, origin.Key) {
			score += bonusFrequentOrigin
		} else if destOK && containsPlace(agent.FrequentPlaces, destination.Key) {
			score += bonusFrequentDestination
		}

		if originOK {
			for _, fp := range agent.FrequentPlaces {
				if e.gaz.SameZone(fp, origin.Key) {
					score += bonusFrequentSameZone
					details.SameZone = true
					break
				}
			}

			// Travel distance from the origin to the nearest frequent
			// place. The origin itself is not a travel target.
			minKm := -1
			for _, fp := range agent.FrequentPlaces {
				if fp == origin.Key {
					continue
				}
				if km, ok := e.gaz.Distance(origin.Key, fp); ok && (minKm < 0 || km < minKm) {
					minKm = km
				}
			}
			if minKm >= 0 {
				km := minKm
				details.EstimatedKm = &km
				switch {
				case minKm < distanceNearKm:
					score += bonusDistanceNear
				case minKm < distanceMidKm:
					score += bonusDistanceMid
				case minKm < distanceFarKm:
					score += bonusDistanceFar
				default:
					score += penaltyDistanceRemote
				}
			}
		}
	}

	return clampScore(score)
}

// operationalScore rewards experience, equipment and track record.
func (e *Engine) operationalScore(agent Agent, req ServiceRequest, details *ScoreDetails) int {
	score := operationalBase

	if agent.SecurityExperience {
		score += bonusSecurityExperience
		if req.RequiresArmedGuard {
			score += bonusArmedService
			details.ServiceTypeExperience = true
		}
	}

	if agent.OwnsVehicle {
		score += bonusOwnsVehicle
		details.VehicleAdvantage = true
		if mentionsRelocation(req.ServiceType) || req.RequiresSpecialEquipment {
			score += bonusEquipmentFit
		}
	}

	if rating, ok := validRating(agent.Rating); ok {
		switch {
		case rating >= 4.5:
			score += bonusRatingExcellent
		case rating >= 4.0:
			score += bonusRatingGood
		case rating >= 3.5:
			score += bonusRatingFair
		}
	}

	if count := agent.CompletedServices; count != nil {
		switch {
		case *count >= 50:
			score += bonusVolumeHigh
		case *count >= 20:
			score += bonusVolumeMid
		case *count >= 10:
			score += bonusVolumeLow
		}
	}

	if len(agent.Certifications) > 0 {
		certBonus := len(agent.Certifications) * bonusPerCertification
		if certBonus > maxCertificationBonus {
			certBonus = maxCertificationBonus
		}
		score += certBonus

		if req.RequiresArmedGuard && hasSecurityCertification(agent.Certifications) {
			score += bonusSecurityCert
			details.ServiceTypeExperience = true
		}
	}

	return clampScore(score)
}

// validRating treats non-finite values as "attribute absent".
func validRating(rating *float64) (float64, bool) {
	if rating == nil || math.IsNaN(*rating) || math.IsInf(*rating, 0) {
		return 0, false
	}
	return *rating, true
}

func mentionsRelocation(serviceType string) bool {
	lowered := strings.ToLower(serviceType)
	for _, kw := range relocationKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func hasSecurityCertification(certifications []string) bool {
	for _, cert := range certifications {
		lowered := strings.ToLower(cert)
		for _, kw := range securityCertKeywords {
			if strings.Contains(lowered, kw) {
				return true
			}
		}
	}
	return false
}

func containsPlace(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}
