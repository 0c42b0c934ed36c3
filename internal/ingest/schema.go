package ingest

import (
	"fmt"
	"strings"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest/util"
)

// Canonical column names as they appear in the shop's sheets. Header
// cells are trimmed before matching; matching is otherwise exact, except
// the promised-date column, whose exact name drifts between tabs
// ("FECH/PROM", "FECHA PROMETIDA", ...) but always starts with FECH.
const (
	ColPlate   = "PATENTE"
	ColVehicle = "VEHICULO"
	ColAdvisor = "ASESOR"
	ColEffort  = "PAÑOS"
	ColPrice   = "PRECIO"
	ColBilling = "FAC"

	promisedDatePrefix = "FECH"
)

// schema maps canonical columns to indexes in one table's header.
// Missing optional columns sit at -1 and read as empty cells.
type schema struct {
	plate    int
	vehicle  int
	advisor  int
	promised int
	effort   int
	price    int
	billing  int
}

// resolveSchema builds the name-mapping table once per source batch.
// Only PATENTE is required: without plates no row survives ingestion
// anyway, so its absence is a group-level failure.
func resolveSchema(header []string) (schema, error) {
	s := schema{plate: -1, vehicle: -1, advisor: -1, promised: -1, effort: -1, price: -1, billing: -1}

	for i, h := range header {
		name := strings.ToUpper(util.CleanText(h))
		switch name {
		case ColPlate:
			s.plate = i
		case ColVehicle:
			s.vehicle = i
		case ColAdvisor:
			s.advisor = i
		case ColEffort:
			s.effort = i
		case ColPrice:
			s.price = i
		case ColBilling:
			s.billing = i
		default:
			if s.promised == -1 && strings.HasPrefix(name, promisedDatePrefix) {
				s.promised = i
			}
		}
	}

	if s.plate == -1 {
		return schema{}, fmt.Errorf("missing required column %s", ColPlate)
	}
	return s, nil
}

func (s schema) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return util.CleanText(row[idx])
}
