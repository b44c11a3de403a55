package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// SampleDataset is the demonstration data shown by both portals.
func SampleDataset() Dataset {
	return Dataset{
		RiskAssessments: []domain.RiskAssessment{
			{
				DeclarationID: "DI2025001247",
				OverallRisk:   domain.RiskMedium,
				Factors: domain.RiskFactors{
					ImporterHistory:      0.2,
					ProductRisk:          0.3,
					OriginCountry:        0.1,
					ValueConsistency:     0.4,
					DocumentAuthenticity: 0.1,
				},
				RecommendedControls: []string{"In-depth documentary check", "Value verification"},
				Confidence:          0.89,
			},
			{
				DeclarationID: "DI2025001248",
				OverallRisk:   domain.RiskHigh,
				Factors: domain.RiskFactors{
					ImporterHistory:      0.7,
					ProductRisk:          0.6,
					OriginCountry:        0.4,
					ValueConsistency:     0.8,
					DocumentAuthenticity: 0.5,
				},
				RecommendedControls: []string{"Mandatory physical inspection", "Laboratory analysis", "Full audit"},
				Confidence:          0.94,
			},
			{
				DeclarationID: "DI2025001249",
				OverallRisk:   domain.RiskLow,
				Factors: domain.RiskFactors{
					ImporterHistory:      0.1,
					ProductRisk:          0.2,
					OriginCountry:        0.1,
					ValueConsistency:     0.1,
					DocumentAuthenticity: 0.05,
				},
				RecommendedControls: []string{"Standard documentary check"},
				Confidence:          0.96,
			},
		},
		Verifications: sampleVerifications(),
		Controls:      sampleControls(),
		TraderStats: domain.TraderStats{
			DeclarationsInProgress: 47,
			EligibilityAlerts:      3,
			DocumentsPending:       12,
			MonthlySavings:         decimal.NewFromInt(127000),
		},
		CustomsStats: domain.CustomsStats{
			DeclarationsPending: 23,
			ControlsInProgress:  8,
			RiskAlerts:          5,
			ValidationsToday:    47,
		},
		TraderAlerts: []domain.Alert{
			{ID: 1, Kind: "savings", Message: "Possible saving: 45,000 USD on Ghana cocoa import", Priority: domain.RiskHigh},
			{ID: 2, Kind: "quota", Message: "Quota available: Burkina Faso textile (87% left)", Priority: domain.RiskMedium},
			{ID: 3, Kind: "expiry", Message: "Certificate COO #445 expires in 5 days", Priority: domain.RiskHigh},
		},
		CustomsAlerts: []domain.Alert{
			{ID: 1, Kind: "valuation", Message: "Value gap on DI2025001250 (+15% vs market price)", Priority: domain.RiskHigh, Age: "10 min"},
			{ID: 2, Kind: "document", Message: "Suspicious certificate of origin: non-conforming signature", Priority: domain.RiskCritical, Age: "25 min"},
			{ID: 3, Kind: "pattern", Message: "New importer: first declaration above 1M USD", Priority: domain.RiskMedium, Age: "1h"},
		},
		Recent: []domain.DeclarationSummary{
			{ID: "DI2025001246", Product: "Burkina Faso textile", Value: decimal.NewFromInt(850000), Currency: "USD", Status: "in progress", Savings: decimal.NewFromInt(25000)},
			{ID: "DI2025001245", Product: "Ethiopian coffee", Value: decimal.NewFromInt(1200000), Currency: "USD", Status: "approved", Savings: decimal.NewFromInt(60000)},
			{ID: "DI2025001244", Product: "Mali mangoes", Value: decimal.NewFromInt(300000), Currency: "USD", Status: "released", Savings: decimal.NewFromInt(15000)},
		},
		Priority: []domain.PriorityDeclaration{
			{ID: "DI2025001247", Importer: "OLAM CÔTE D'IVOIRE", Product: "Cocoa beans", Value: decimal.NewFromInt(2500000), Currency: "USD", Risk: domain.RiskMedium, Status: "under verification", Deadline: "2h left"},
			{ID: "DI2025001248", Importer: "SIFCA GROUP", Product: "Palm oil", Value: decimal.NewFromInt(1800000), Currency: "USD", Risk: domain.RiskHigh, Status: "physical inspection required", Deadline: "4h left"},
			{ID: "DI2025001249", Importer: "NESTLÉ CI", Product: "Raw materials", Value: decimal.NewFromInt(950000), Currency: "USD", Risk: domain.RiskLow, Status: "ready for validation", Deadline: "1h left"},
		},
	}
}

func sampleVerifications() []domain.DocumentVerification {
	return []domain.DocumentVerification{
		{
			ID:            "doc_1",
			DeclarationID: "DI2025001247",
			Importer:      "OLAM CÔTE D'IVOIRE",
			Document: domain.Document{
				ID:         "doc_1",
				Name:       "Facture Commerciale - OLAM.pdf",
				Type:       domain.DocumentInvoice,
				Status:     domain.DocumentAnalyzed,
				Confidence: 0.94,
				Extracted: domain.InvoiceData{
					InvoiceNumber: "GCB-2025-4567",
					Seller:        "GHANA COCOA BOARD",
					Buyer:         "OLAM CÔTE D'IVOIRE",
					TotalAmount:   decimal.NewFromInt(2500000),
					Currency:      "USD",
					IssuedOn:      "10/10/2025",
				},
			},
			Status: domain.VerificationInReview,
			Findings: []domain.VerificationFinding{
				{Type: domain.FindingCompliant, Field: "Total amount", Description: "Amount consistent with supporting documents", Severity: domain.RiskLow, AutoDetected: true},
				{Type: domain.FindingWarning, Field: "Signature", Description: "Electronic signature detected, manual check recommended", Severity: domain.RiskMedium, AutoDetected: true},
			},
			RiskScore:         0.25,
			RecommendedAction: domain.ActionApprove,
		},
		{
			ID:            "doc_2",
			DeclarationID: "DI2025001247",
			Importer:      "OLAM CÔTE D'IVOIRE",
			Document: domain.Document{
				ID:         "doc_2",
				Name:       "Certificat Origine Ghana.pdf",
				Type:       domain.DocumentCertificateOfOrigin,
				Status:     domain.DocumentAnalyzed,
				Confidence: 0.98,
				Extracted: domain.CertificateOfOriginData{
					CertificateNumber: "GH-COO-2025-8901",
					OriginCountry:     "Ghana",
					Product:           "Cocoa beans",
					HSCode:            "1801.00.00",
					Quantity:          "500,000 kg",
					IssuedOn:          "08/10/2025",
				},
			},
			Status: domain.VerificationInReview,
			Findings: []domain.VerificationFinding{
				{Type: domain.FindingCompliant, Field: "Official signature", Description: "Official signature and stamp of the Ghana Export Promotion Authority", Severity: domain.RiskLow, AutoDetected: true},
				{Type: domain.FindingCompliant, Field: "HS code", Description: "HS code 1801.00.00 matches cocoa beans", Severity: domain.RiskLow, AutoDetected: true},
				{Type: domain.FindingCompliant, Field: "AfCFTA eligibility", Description: "100% Ghana origin, preferential tariff applies", Severity: domain.RiskLow, AutoDetected: true},
			},
			RiskScore:         0.05,
			RecommendedAction: domain.ActionApprove,
		},
		{
			ID:            "doc_3",
			DeclarationID: "DI2025001248",
			Importer:      "SIFCA GROUP",
			Document: domain.Document{
				ID:         "doc_3",
				Name:       "Connaissement Maritime.pdf",
				Type:       domain.DocumentBillOfLading,
				Status:     domain.DocumentAnalyzed,
				Confidence: 0.87,
				Extracted: domain.BillOfLadingData{
					Vessel:          "MSC MEDITERRANEAN",
					PortOfLoading:   "Port de Lomé",
					PortOfDischarge: "Port d'Abidjan",
					GrossWeight:     "1,850 t",
				},
			},
			Status: domain.VerificationRequiresPhysical,
			Findings: []domain.VerificationFinding{
				{Type: domain.FindingDiscrepancy, Field: "Declared weight", Description: "2.3% gap between declared gross and net weight", Severity: domain.RiskMedium, AutoDetected: true},
				{Type: domain.FindingSuspicious, Field: "Port of loading", Description: "Unusual port for this kind of goods", Severity: domain.RiskHigh, AutoDetected: true},
			},
			RiskScore:         0.68,
			RecommendedAction: domain.ActionPhysicalExam,
		},
	}
}

func sampleControls() []domain.CustomsControl {
	completed := time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC)
	return []domain.CustomsControl{
		{
			ID:              "CTRL_2025_001",
			DeclarationID:   "DI2025001248",
			Type:            domain.ControlPhysical,
			Status:          domain.ControlScheduled,
			AssignedOfficer: "Inspector TRAORE Sekou",
			ScheduledAt:     time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC),
			Findings:        []domain.ControlFinding{},
			Decision:        domain.DecisionHold,
		},
		{
			ID:              "CTRL_2025_002",
			DeclarationID:   "DI2025001250",
			Type:            domain.ControlScanner,
			Status:          domain.ControlInProgress,
			AssignedOfficer: "Inspector KOUAME Marie",
			ScheduledAt:     time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC),
			Findings: []domain.ControlFinding{
				{Category: "quantity", Description: "Weight gap detected: +3.2% against the declaration", Evidence: []string{"scanner_image_001.jpg", "weight_report.pdf"}, Impact: domain.ImpactMinor},
			},
			Decision: domain.DecisionHold,
		},
		{
			ID:              "CTRL_2025_003",
			DeclarationID:   "DI2025001247",
			Type:            domain.ControlPhysical,
			Status:          domain.ControlCompleted,
			AssignedOfficer: "Inspector KONE Mamadou",
			ScheduledAt:     time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
			CompletedAt:     &completed,
			Findings: []domain.ControlFinding{
				{Category: "quality", Description: "Quality meets standards, grade A cocoa beans", Evidence: []string{"quality_report.pdf", "sample_photos.jpg"}, Impact: domain.ImpactNone},
				{Category: "quantity", Description: "Weight verified: exactly 500,000 kg", Evidence: []string{"weighing_certificate.pdf"}, Impact: domain.ImpactNone},
			},
			Decision: domain.DecisionRelease,
		},
	}
}
