package analytics

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orden alfabético en español sin distinguir mayúsculas ni tildes.
// Un Collator no es seguro para uso concurrente: crear uno por reporte.
func nameCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
}
