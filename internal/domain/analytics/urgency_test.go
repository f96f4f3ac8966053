package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

func TestClassifyUrgency_Umbrales(t *testing.T) {
	cases := map[int]entity.UrgencyTier{
		-3:  entity.UrgencyCritical,
		0:   entity.UrgencyCritical,
		7:   entity.UrgencyCritical,
		8:   entity.UrgencyUrgent,
		14:  entity.UrgencyUrgent,
		15:  entity.UrgencyAttention,
		30:  entity.UrgencyAttention,
		31:  entity.UrgencyOK,
		999: entity.UrgencyOK,
	}
	for days, want := range cases {
		d := days
		assert.Equal(t, want, analytics.ClassifyUrgency(&d), "días=%d", days)
	}
	assert.Equal(t, entity.UrgencyHistorical, analytics.ClassifyUrgency(nil))
}

// Cada valor cae exactamente en un nivel y los niveles son monótonos.
func TestClassifyUrgency_ParticionMonotona(t *testing.T) {
	rank := map[entity.UrgencyTier]int{
		entity.UrgencyCritical:  0,
		entity.UrgencyUrgent:    1,
		entity.UrgencyAttention: 2,
		entity.UrgencyOK:        3,
	}
	prev := -1
	for d := -10; d <= 400; d++ {
		days := d
		tier := analytics.ClassifyUrgency(&days)
		r, ok := rank[tier]
		assert.True(t, ok, "nivel inesperado %s para %d días", tier, d)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestCountUrgency_IncluyeNivelesVacios(t *testing.T) {
	counts := analytics.CountUrgency([]entity.UrgencyTier{
		entity.UrgencyCritical, entity.UrgencyCritical, entity.UrgencyOK,
	})
	assert.Len(t, counts, len(entity.UrgencyTiers))
	assert.Equal(t, 2, counts[entity.UrgencyCritical])
	assert.Equal(t, 0, counts[entity.UrgencyUrgent])
	assert.Equal(t, 1, counts[entity.UrgencyOK])
}

func TestUrgencyTier_Label(t *testing.T) {
	assert.Equal(t, "CRÍTICO", entity.UrgencyCritical.Label())
	assert.Equal(t, "HISTÓRICO", entity.UrgencyHistorical.Label())
}
