package scoring

import "fmt"

// maxReasons caps the justification list shown in the ranking UI.
const maxReasons = 3

// temporalReasonFloor is the temporal sub-score above which the
// availability reason leads the list.
const temporalReasonFloor = 60

// nearbyReasonKm is the frequent-place distance under which proximity is
// worth mentioning.
const nearbyReasonKm = 50

// Total-score bands for the generic fallback reason.
const (
	bandHighlyCompatible = 70
	bandCompatible       = 50
)

// Explain converts a breakdown into at most three human-readable reasons,
// highest-signal first. Reason text is the product's UI language (Spanish).
// The list is never empty: when no specific fact applies, a generic reason
// keyed by the total band is returned.
func Explain(breakdown ScoreBreakdown, agent Agent) []string {
	reasons := make([]string, 0, maxReasons)
	add := func(reason string) {
		if len(reasons) < maxReasons {
			reasons = append(reasons, reason)
		}
	}

	if breakdown.Temporal > temporalReasonFloor {
		add("Disponibilidad inmediata: termina un servicio cercano pocas horas antes")
	}
	if breakdown.Details.PreferredZoneMatch {
		add("La ruta coincide con su zona de operación preferida")
	}
	if breakdown.Details.SameZone {
		add("Opera con frecuencia en la misma región que el origen")
	}
	if km := breakdown.Details.EstimatedKm; km != nil && *km < nearbyReasonKm {
		add(fmt.Sprintf("Origen a %d km de sus lugares frecuentes", *km))
	}
	if breakdown.Details.ServiceTypeExperience {
		add("Experiencia comprobada en este tipo de servicio")
	}
	if breakdown.Details.VehicleAdvantage {
		add("Cuenta con vehículo propio")
	}
	if rating, ok := validRating(agent.Rating); ok && rating >= 4.5 {
		add("Calificación sobresaliente de clientes anteriores")
	}
	if count := agent.CompletedServices; count != nil && *count >= 20 {
		add(fmt.Sprintf("Historial sólido: %d servicios completados", *count))
	}

	if len(reasons) == 0 {
		switch {
		case breakdown.Total >= bandHighlyCompatible:
			reasons = append(reasons, "Perfil altamente compatible con el servicio")
		case breakdown.Total >= bandCompatible:
			reasons = append(reasons, "Perfil compatible con el servicio")
		default:
			reasons = append(reasons, "Disponible para el servicio")
		}
	}

	return reasons
}
