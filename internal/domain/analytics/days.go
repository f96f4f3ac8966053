package analytics

import "time"

const day = 24 * time.Hour

// DaysSince días completos transcurridos entre t y now, nunca menor que 1.
// Cubre eventos en el futuro por desfase de reloj y evita divisiones por cero.
func DaysSince(now, t time.Time) int {
	d := int(now.Sub(t) / day)
	if d < 1 {
		return 1
	}
	return d
}

// DaysBetween días completos entre from y to, sin mínimo (0 si caen el mismo día).
func DaysBetween(from, to time.Time) int {
	d := int(to.Sub(from) / day)
	if d < 0 {
		return 0
	}
	return d
}

// calendarDays diferencia de fechas calendario entre from y to en la zona de from.
// Un cambio de horario no resta un día como lo haría dividir la duración.
func calendarDays(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.In(from.Location()).Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / day)
}

// latest devuelve el mayor de los instantes; los ceros (sin dato) se ignoran.
func latest(ts ...time.Time) time.Time {
	var out time.Time
	for _, t := range ts {
		if t.After(out) {
			out = t
		}
	}
	return out
}
