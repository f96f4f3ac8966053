package analytics

import "github.com/jhoicas/analitica-sedes/internal/domain/entity"

// Umbrales de urgencia en días de inventario restante.
const (
	criticalMaxDays  = 7
	urgentMaxDays    = 14
	attentionMaxDays = 30
)

// ClassifyUrgency único punto de clasificación de urgencia; nil = HISTORICAL.
func ClassifyUrgency(daysRemaining *int) entity.UrgencyTier {
	if daysRemaining == nil {
		return entity.UrgencyHistorical
	}
	switch d := *daysRemaining; {
	case d <= criticalMaxDays:
		return entity.UrgencyCritical
	case d <= urgentMaxDays:
		return entity.UrgencyUrgent
	case d <= attentionMaxDays:
		return entity.UrgencyAttention
	default:
		return entity.UrgencyOK
	}
}

// CountUrgency cuenta filas por nivel; todos los niveles aparecen aunque tengan 0.
func CountUrgency(tiers []entity.UrgencyTier) map[entity.UrgencyTier]int {
	out := make(map[entity.UrgencyTier]int, len(entity.UrgencyTiers))
	for _, t := range entity.UrgencyTiers {
		out[t] = 0
	}
	for _, t := range tiers {
		out[t]++
	}
	return out
}
