package catalog

import (
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
)

func cat(id, name string, cost int64, desc string) domain.TreatmentCategory {
	return domain.TreatmentCategory{ID: id, Name: name, BaseCost: decimal.NewFromInt(cost), Description: desc}
}

// DefaultCategories is the built-in dental catalog used to seed an empty store.
func DefaultCategories() []domain.TreatmentCategory {
	return []domain.TreatmentCategory{
		cat("consultation", "Consultation", 500, "Examination and treatment planning"),
		cat("scaling", "Scaling & Polishing", 1200, "Full mouth cleaning"),
		cat("filling", "Filling", 1500, "Composite restoration"),
		cat("tc-filling", "Tooth Coloured Filling", 2000, "Aesthetic composite filling"),
		cat("rct", "Root Canal Treatment", 6000, "Endodontic treatment per tooth"),
		cat("crown-pfm", "PFM Crown", 5500, "Porcelain fused to metal crown"),
		cat("crown-zirconia", "Zirconia Crown", 12000, "Metal-free crown"),
		cat("extraction", "Extraction", 800, "Simple extraction"),
		cat("wisdom-extraction", "Wisdom Tooth Extraction", 4500, "Surgical removal of impacted third molar"),
		cat("implant", "Implant", 30000, "Titanium implant with abutment"),
		cat("bridge", "Bridge", 15000, "Three-unit fixed bridge"),
		cat("denture", "Complete Denture", 20000, "Upper and lower acrylic dentures"),
		cat("braces", "Orthodontic Braces", 35000, "Metal brackets, full course"),
		cat("whitening", "Teeth Whitening", 8000, "In-office bleaching"),
		cat("xray", "IOPA X-Ray", 300, "Intraoral periapical radiograph"),
	}
}
