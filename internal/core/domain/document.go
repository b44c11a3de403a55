package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DocumentType string

const (
	DocumentInvoice             DocumentType = "invoice"
	DocumentBillOfLading        DocumentType = "bill_of_lading"
	DocumentCertificateOfOrigin DocumentType = "certificate_of_origin"
	DocumentPackingList         DocumentType = "packing_list"
)

func (t DocumentType) Label() string {
	switch t {
	case DocumentInvoice:
		return "Commercial invoice"
	case DocumentBillOfLading:
		return "Bill of lading"
	case DocumentCertificateOfOrigin:
		return "Certificate of origin"
	case DocumentPackingList:
		return "Packing list"
	default:
		return string(t)
	}
}

// ClassifyFilename picks the document type from tokens in the file name.
// The tokens are the French names the trader portal's users give their scans.
func ClassifyFilename(name string) DocumentType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "facture"):
		return DocumentInvoice
	case strings.Contains(lower, "connaissement"):
		return DocumentBillOfLading
	case strings.Contains(lower, "certificat"):
		return DocumentCertificateOfOrigin
	default:
		return DocumentPackingList
	}
}

type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentAnalyzed   DocumentStatus = "analyzed"
	DocumentValidated  DocumentStatus = "validated"
	DocumentError      DocumentStatus = "error"
)

// FileDescriptor is what the caller knows about a file before analysis.
type FileDescriptor struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type,omitempty"`
}

type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       DocumentType   `json:"type"`
	Status     DocumentStatus `json:"status"`
	Confidence float64        `json:"confidence"`
	Extracted  ExtractedData  `json:"extracted,omitempty"`
	Alerts     []string       `json:"alerts"`
	SizeBytes  int64          `json:"size_bytes,omitempty"`
	MimeType   string         `json:"mime_type,omitempty"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

func (d Document) clone() Document {
	out := d
	out.Alerts = append([]string(nil), d.Alerts...)
	return out
}

// ExtractedData is the per-type schema of fields read from a document.
// Implementations are value types, so sharing them between copies is safe.
type ExtractedData interface {
	DocumentType() DocumentType
}

type InvoiceData struct {
	InvoiceNumber string          `json:"invoice_number"`
	Seller        string          `json:"seller"`
	Buyer         string          `json:"buyer"`
	Product       string          `json:"product"`
	Quantity      string          `json:"quantity"`
	HSCode        string          `json:"hs_code"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	IssuedOn      string          `json:"issued_on"`
}

func (InvoiceData) DocumentType() DocumentType { return DocumentInvoice }

type BillOfLadingData struct {
	BillNumber      string `json:"bill_number"`
	Carrier         string `json:"carrier"`
	Vessel          string `json:"vessel"`
	PortOfLoading   string `json:"port_of_loading"`
	PortOfDischarge string `json:"port_of_discharge"`
	GrossWeight     string `json:"gross_weight"`
	Consignee       string `json:"consignee"`
}

func (BillOfLadingData) DocumentType() DocumentType { return DocumentBillOfLading }

type CertificateOfOriginData struct {
	CertificateNumber string `json:"certificate_number"`
	OriginCountry     string `json:"origin_country"`
	IssuingAuthority  string `json:"issuing_authority"`
	Product           string `json:"product"`
	HSCode            string `json:"hs_code"`
	Quantity          string `json:"quantity"`
	IssuedOn          string `json:"issued_on"`
}

func (CertificateOfOriginData) DocumentType() DocumentType { return DocumentCertificateOfOrigin }

type PackingListData struct {
	Packages    int    `json:"packages"`
	PackageKind string `json:"package_kind"`
	NetWeight   string `json:"net_weight"`
	GrossWeight string `json:"gross_weight"`
	Marks       string `json:"marks"`
}

func (PackingListData) DocumentType() DocumentType { return DocumentPackingList }
