package simulated

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

const (
	minConfidence   = 0.95
	confidenceRange = 0.05
)

// DocumentAnalyzer stands in for OCR. It types files by name and fills in
// the sample extraction of that type.
type DocumentAnalyzer struct {
	ids   ports.IDGenerator
	clock ports.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDocumentAnalyzer(ids ports.IDGenerator, clock ports.Clock, rng *rand.Rand) *DocumentAnalyzer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DocumentAnalyzer{ids: ids, clock: clock, rng: rng}
}

func (a *DocumentAnalyzer) Analyze(ctx context.Context, file domain.FileDescriptor) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	docType := domain.ClassifyFilename(file.Name)
	return domain.Document{
		ID:         a.ids.NewID(),
		Name:       file.Name,
		Type:       docType,
		Status:     domain.DocumentAnalyzed,
		Confidence: a.confidence(),
		Extracted:  sampleExtraction(docType),
		Alerts:     []string{},
		SizeBytes:  file.SizeBytes,
		MimeType:   file.MimeType,
		AnalyzedAt: a.clock.Now(),
	}, nil
}

// confidence is uniform in [0.95, 1).
func (a *DocumentAnalyzer) confidence() float64 {
	a.mu.Lock()
	v := minConfidence + a.rng.Float64()*confidenceRange
	a.mu.Unlock()
	if v >= 1 {
		v = math.Nextafter(1, 0)
	}
	return v
}

func sampleExtraction(t domain.DocumentType) domain.ExtractedData {
	switch t {
	case domain.DocumentInvoice:
		return domain.InvoiceData{
			InvoiceNumber: "GCB-2025-4567",
			Seller:        "GHANA COCOA BOARD",
			Buyer:         "OLAM CÔTE D'IVOIRE",
			Product:       "Cocoa beans",
			Quantity:      "500 t",
			HSCode:        "1801.00.00",
			TotalAmount:   decimal.NewFromInt(2_500_000),
			Currency:      "USD",
			IssuedOn:      "10/10/2025",
		}
	case domain.DocumentBillOfLading:
		return domain.BillOfLadingData{
			BillNumber:      "MSCU-LFW-88231",
			Carrier:         "MSC",
			Vessel:          "MSC MEDITERRANEAN",
			PortOfLoading:   "Port of Tema",
			PortOfDischarge: "Port d'Abidjan",
			GrossWeight:     "512 t",
			Consignee:       "OLAM CÔTE D'IVOIRE",
		}
	case domain.DocumentCertificateOfOrigin:
		return domain.CertificateOfOriginData{
			CertificateNumber: "GH-COO-2025-8901",
			OriginCountry:     "Ghana",
			IssuingAuthority:  "Ghana Export Promotion Authority",
			Product:           "Cocoa beans",
			HSCode:            "1801.00.00",
			Quantity:          "500,000 kg",
			IssuedOn:          "08/10/2025",
		}
	default:
		return domain.PackingListData{
			Packages:    8000,
			PackageKind: "jute bags",
			NetWeight:   "500 t",
			GrossWeight: "512 t",
			Marks:       "OLAM/ABJ/2025",
		}
	}
}
