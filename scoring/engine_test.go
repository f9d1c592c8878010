package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/manuchak/detecta-core-sub015/gazetteer"
)

// 2025-03-04 is a Tuesday, 2025-03-01 a Saturday, 2025-03-02 a Sunday.
var (
	tuesday  = time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(gazetteer.Default(), DefaultWeights())
}

func float64Ptr(v float64) *float64 { return &v }
func int32Ptr(v int32) *int32       { return &v }

func TestScoreBareAgentGetsBaseScores(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{ID: "a1", Name: "Agente Uno", Available: true}
	req := ServiceRequest{
		Origin:      "punto sin registrar",
		Destination: "otro punto sin registrar",
		ScheduledAt: tuesday,
		ServiceType: "custodia",
	}

	breakdown := engine.Score(agent, req, nil)
	require.Equal(t, 30, breakdown.Temporal)
	require.Equal(t, 20, breakdown.Geographic)
	require.Equal(t, 25, breakdown.Operational)
	// round(30*0.40 + 20*0.35 + 25*0.25) = round(25.25)
	require.Equal(t, 25, breakdown.Total)
	require.NotEmpty(t, breakdown.Reasons)
}

func TestScoreRatingAndVolume(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{
		ID:                "a2",
		Rating:            float64Ptr(4.8),
		CompletedServices: int32Ptr(60),
	}
	req := ServiceRequest{
		Origin:      "sin lugar",
		Destination: "sin lugar",
		ScheduledAt: tuesday,
	}

	breakdown := engine.Score(agent, req, nil)
	require.Equal(t, 30, breakdown.Temporal)
	require.Equal(t, 20, breakdown.Geographic)
	// 25 base + 20 rating + 15 volume
	require.Equal(t, 60, breakdown.Operational)
	require.Equal(t, 34, breakdown.Total)
}

func TestTemporalWeekdayAvailability(t *testing.T) {
	engine := newTestEngine(t)

	testCases := []struct {
		name     string
		avail    WeeklyAvailability
		when     time.Time
		expected int
	}{
		{name: "weekday match", avail: WeeklyAvailability{Weekdays: true}, when: tuesday, expected: 45},
		{name: "saturday match", avail: WeeklyAvailability{Saturday: true}, when: saturday, expected: 40},
		{name: "sunday match", avail: WeeklyAvailability{Sunday: true}, when: sunday, expected: 35},
		{name: "saturday without saturday availability", avail: WeeklyAvailability{Weekdays: true}, when: saturday, expected: 30},
		{name: "weekday without weekday availability", avail: WeeklyAvailability{Saturday: true, Sunday: true}, when: tuesday, expected: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := Agent{ID: "a3", Availability: &tc.avail}
			req := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tc.when}

			breakdown := engine.Score(agent, req, nil)
			require.Equal(t, tc.expected, breakdown.Temporal)
		})
	}
}

func TestTemporalGapBands(t *testing.T) {
	engine := newTestEngine(t)

	record := func(hoursBefore float64, status string) HistoricalRecord {
		return HistoricalRecord{
			AgentID:    "a4",
			OccurredAt: tuesday.Add(-time.Duration(hoursBefore * float64(time.Hour))),
			Origin:     "puebla",
			Status:     status,
		}
	}

	testCases := []struct {
		name     string
		history  []HistoricalRecord
		expected int
		gap      *float64
	}{
		{name: "no history", history: nil, expected: 30},
		{name: "tight gap", history: []HistoricalRecord{record(3, StatusCompleted)}, expected: 60, gap: float64Ptr(3)},
		{name: "comfortable gap", history: []HistoricalRecord{record(6, StatusCompleted)}, expected: 50, gap: float64Ptr(6)},
		{name: "immediate gap", history: []HistoricalRecord{record(1.5, StatusCompleted)}, expected: 40, gap: float64Ptr(1.5)},
		{name: "gap too short", history: []HistoricalRecord{record(0.5, StatusCompleted)}, expected: 30},
		{name: "gap too long", history: []HistoricalRecord{record(12, StatusCompleted)}, expected: 30},
		{name: "service in the future", history: []HistoricalRecord{record(-2, StatusCompleted)}, expected: 30},
		{name: "cancelled service ignored", history: []HistoricalRecord{record(3, "cancelled")}, expected: 30},
		{
			name: "first qualifying record wins",
			history: []HistoricalRecord{
				record(0.5, StatusCompleted),
				record(6, StatusCompleted),
				record(3, StatusCompleted),
			},
			expected: 50,
			gap:      float64Ptr(6),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := Agent{ID: "a4"}
			req := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tuesday}

			breakdown := engine.Score(agent, req, tc.history)
			require.Equal(t, tc.expected, breakdown.Temporal)
			if tc.gap == nil {
				require.Nil(t, breakdown.Details.HoursUntilService)
			} else {
				require.NotNil(t, breakdown.Details.HoursUntilService)
				require.InDelta(t, *tc.gap, *breakdown.Details.HoursUntilService, 0.01)
			}
		})
	}
}

func TestGeographicFrequentOrigin(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{ID: "a5", FrequentPlaces: []string{"tehuacan"}}
	req := ServiceRequest{
		Origin:      "Planta en Tehuacán",
		Destination: "punto sin registrar",
		ScheduledAt: tuesday,
	}

	breakdown := engine.Score(agent, req, nil)
	// 20 base + 35 frequent origin + 15 same zone; the lone frequent place
	// is the origin itself, so no distance band applies.
	require.Equal(t, 70, breakdown.Geographic)
	require.True(t, breakdown.Details.SameZone)
	require.Nil(t, breakdown.Details.EstimatedKm)
}

func TestGeographicFrequentDestination(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{ID: "a6", FrequentPlaces: []string{"monterrey"}}
	req := ServiceRequest{
		Origin:      "punto sin registrar",
		Destination: "bodega en monterrey",
		ScheduledAt: tuesday,
	}

	breakdown := engine.Score(agent, req, nil)
	// 20 base + 25 frequent destination; origin never resolved, so neither
	// the same-zone test nor a distance band applies.
	require.Equal(t, 45, breakdown.Geographic)
	require.False(t, breakdown.Details.SameZone)
	require.Nil(t, breakdown.Details.EstimatedKm)
}

func TestGeographicPreferredZone(t *testing.T) {
	engine := newTestEngine(t)

	req := ServiceRequest{
		Origin:      "salida de puebla",
		Destination: "entrega en cdmx",
		ScheduledAt: tuesday,
	}

	originMatch := engine.Score(Agent{ID: "a7", PreferredZone: "puebla-tlaxcala"}, req, nil)
	require.Equal(t, 45, originMatch.Geographic)
	require.True(t, originMatch.Details.PreferredZoneMatch)

	destMatch := engine.Score(Agent{ID: "a8", PreferredZone: "centro"}, req, nil)
	require.Equal(t, 35, destMatch.Geographic)
	require.True(t, destMatch.Details.PreferredZoneMatch)

	noMatch := engine.Score(Agent{ID: "a9", PreferredZone: "norte"}, req, nil)
	require.Equal(t, 20, noMatch.Geographic)
	require.False(t, noMatch.Details.PreferredZoneMatch)
}

func TestGeographicDistanceBands(t *testing.T) {
	engine := newTestEngine(t)

	testCases := []struct {
		name     string
		frequent []string
		origin   string
		expected int
		wantKm   bool
	}{
		// tlaxcala-apizaco is ~15 km: near band, plus same zone.
		{name: "near", frequent: []string{"apizaco"}, origin: "tlaxcala", expected: 20 + 15 + 20, wantKm: true},
		// puebla-tehuacan is ~110 km: far band, plus same zone.
		{name: "far same zone", frequent: []string{"tehuacan"}, origin: "puebla", expected: 20 + 15 + 5, wantKm: true},
		// puebla-monterrey is ~700 km: remote penalty, different zones.
		{name: "remote", frequent: []string{"monterrey"}, origin: "puebla", expected: 20 - 5, wantKm: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := Agent{ID: "a10", FrequentPlaces: tc.frequent}
			req := ServiceRequest{
				Origin:      tc.origin,
				Destination: "punto sin registrar",
				ScheduledAt: tuesday,
			}

			breakdown := engine.Score(agent, req, nil)
			require.Equal(t, tc.expected, breakdown.Geographic)
			if tc.wantKm {
				require.NotNil(t, breakdown.Details.EstimatedKm)
			}
		})
	}
}

func TestOperationalSecurityAndVehicle(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{
		ID:                 "a11",
		SecurityExperience: true,
		OwnsVehicle:        true,
	}

	armed := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tuesday, RequiresArmedGuard: true}
	breakdown := engine.Score(agent, armed, nil)
	// 25 base + 15 security + 10 armed + 10 vehicle
	require.Equal(t, 60, breakdown.Operational)
	require.True(t, breakdown.Details.ServiceTypeExperience)
	require.True(t, breakdown.Details.VehicleAdvantage)

	relocation := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tuesday, ServiceType: "Traslado de maquinaria"}
	breakdown = engine.Score(agent, relocation, nil)
	// 25 base + 15 security + 10 vehicle + 5 equipment fit
	require.Equal(t, 55, breakdown.Operational)
	require.False(t, breakdown.Details.ServiceTypeExperience)
}

func TestOperationalCertifications(t *testing.T) {
	engine := newTestEngine(t)

	req := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tuesday, RequiresArmedGuard: true}

	capped := engine.Score(Agent{
		ID:             "a12",
		Certifications: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"},
	}, req, nil)
	// 25 base + 10 capped certification bonus, none security-related
	require.Equal(t, 35, capped.Operational)
	require.False(t, capped.Details.ServiceTypeExperience)

	armed := engine.Score(Agent{
		ID:             "a13",
		Certifications: []string{"Portación de arma"},
	}, req, nil)
	// 25 base + 2 certification + 10 security certification
	require.Equal(t, 37, armed.Operational)
	require.True(t, armed.Details.ServiceTypeExperience)
}

func TestOperationalRatingBands(t *testing.T) {
	engine := newTestEngine(t)

	req := ServiceRequest{Origin: "x", Destination: "y", ScheduledAt: tuesday}

	testCases := []struct {
		name     string
		rating   *float64
		expected int
	}{
		{name: "excellent", rating: float64Ptr(4.5), expected: 45},
		{name: "good", rating: float64Ptr(4.2), expected: 40},
		{name: "fair", rating: float64Ptr(3.5), expected: 35},
		{name: "below fair", rating: float64Ptr(3.0), expected: 25},
		{name: "absent", rating: nil, expected: 25},
		{name: "nan ignored", rating: float64Ptr(math.NaN()), expected: 25},
		{name: "inf ignored", rating: float64Ptr(math.Inf(1)), expected: 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown := engine.Score(Agent{ID: "a14", Rating: tc.rating}, req, nil)
			require.Equal(t, tc.expected, breakdown.Operational)
		})
	}
}

func TestOperationalClampsAtHundred(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{
		ID:                 "a15",
		SecurityExperience: true,
		OwnsVehicle:        true,
		Rating:             float64Ptr(4.9),
		CompletedServices:  int32Ptr(120),
		Certifications:     []string{"custodia armada", "manejo defensivo", "primeros auxilios", "logistica", "escolta", "blindados"},
	}
	req := ServiceRequest{
		Origin:                   "x",
		Destination:              "y",
		ScheduledAt:              tuesday,
		RequiresArmedGuard:       true,
		RequiresSpecialEquipment: true,
	}

	breakdown := engine.Score(agent, req, nil)
	require.Equal(t, 100, breakdown.Operational)
	require.LessOrEqual(t, breakdown.Total, 100)
	require.GreaterOrEqual(t, breakdown.Total, 0)
}

func TestTotalIsWeightedSum(t *testing.T) {
	engine := newTestEngine(t)

	agent := Agent{
		ID:                 "a16",
		Availability:       &WeeklyAvailability{Weekdays: true},
		PreferredZone:      "puebla-tlaxcala",
		FrequentPlaces:     []string{"puebla", "tlaxcala"},
		SecurityExperience: true,
		OwnsVehicle:        true,
		Rating:             float64Ptr(4.6),
		CompletedServices:  int32Ptr(34),
	}
	req := ServiceRequest{
		Origin:             "CEDIS Puebla",
		Destination:        "Planta Tlaxcala",
		ScheduledAt:        tuesday,
		ServiceType:        "custodia",
		RequiresArmedGuard: true,
	}

	breakdown := engine.Score(agent, req, nil)
	weights := DefaultWeights()
	expected := clampScore(int(math.Round(
		float64(breakdown.Temporal)*weights.Temporal +
			float64(breakdown.Geographic)*weights.Geographic +
			float64(breakdown.Operational)*weights.Operational,
	)))
	require.Equal(t, expected, breakdown.Total)
}

func TestScoreMonotonicInAttributes(t *testing.T) {
	engine := newTestEngine(t)

	req := ServiceRequest{
		Origin:      "salida de puebla",
		Destination: "entrega en cdmx",
		ScheduledAt: tuesday,
	}

	bare := engine.Score(Agent{ID: "a17"}, req, nil)
	better := engine.Score(Agent{
		ID:                "a17",
		OwnsVehicle:       true,
		Rating:            float64Ptr(4.7),
		CompletedServices: int32Ptr(55),
		Availability:      &WeeklyAvailability{Weekdays: true},
	}, req, nil)

	require.Greater(t, better.Total, bare.Total)
}
