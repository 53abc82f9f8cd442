// internal/domain/models/sectors.go
package models

// ProfessionalSector is one of the fixed set of sector labels users pick
// from. The labels are data, not UI strings, and must stay stable.
type ProfessionalSector string

const (
	SectorTecnologia    ProfessionalSector = "Tecnología"
	SectorSalud         ProfessionalSector = "Salud"
	SectorFinanzas      ProfessionalSector = "Finanzas"
	SectorEducacion     ProfessionalSector = "Educación"
	SectorMarketing     ProfessionalSector = "Marketing"
	SectorArtesCreativa ProfessionalSector = "Artes Creativas"
	SectorIngenieria    ProfessionalSector = "Ingeniería"
	SectorLegal         ProfessionalSector = "Legal"
	SectorHosteleria    ProfessionalSector = "Hostelería"
	SectorVentaMinorist ProfessionalSector = "Venta Minorista"
	SectorManufactura   ProfessionalSector = "Manufactura"
	SectorOtro          ProfessionalSector = "Otro"
)

// ProfessionalSectors lists every valid sector in display order.
var ProfessionalSectors = []ProfessionalSector{
	SectorTecnologia,
	SectorSalud,
	SectorFinanzas,
	SectorEducacion,
	SectorMarketing,
	SectorArtesCreativa,
	SectorIngenieria,
	SectorLegal,
	SectorHosteleria,
	SectorVentaMinorist,
	SectorManufactura,
	SectorOtro,
}

// IsValidSector reports whether s is a member of the sector set.
func IsValidSector(s string) bool {
	for _, sector := range ProfessionalSectors {
		if string(sector) == s {
			return true
		}
	}
	return false
}

// SectorStrings returns the sector labels as plain strings.
func SectorStrings() []string {
	out := make([]string, len(ProfessionalSectors))
	for i, s := range ProfessionalSectors {
		out[i] = string(s)
	}
	return out
}
