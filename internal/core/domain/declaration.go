package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DeclarationStatus string

const (
	DeclarationDraftStatus DeclarationStatus = "draft"
	DeclarationProcessing  DeclarationStatus = "processing"
	DeclarationSubmitted   DeclarationStatus = "submitted"
	DeclarationApproved    DeclarationStatus = "approved"
	DeclarationRejected    DeclarationStatus = "rejected"
)

// Customs regime codes offered by the intake form.
const (
	RegimeDefinitiveImport = "IM4"
	RegimeTemporaryImport  = "IM7"
)

// DraftField names a scalar field of the draft that the info step can edit.
type DraftField string

const (
	FieldImporter      DraftField = "importer"
	FieldAddress       DraftField = "address"
	FieldRegime        DraftField = "regime"
	FieldDischargePort DraftField = "discharge_port"
	FieldOriginCountry DraftField = "origin_country"
	FieldCurrency      DraftField = "currency"
)

func ParseDraftField(name string) (DraftField, error) {
	field := DraftField(strings.ToLower(strings.TrimSpace(name)))
	switch field {
	case FieldImporter, FieldAddress, FieldRegime, FieldDischargePort, FieldOriginCountry, FieldCurrency:
		return field, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse draft field", fmt.Errorf("unknown field %q", name))
	}
}

type DeclarationDraft struct {
	Importer      string               `json:"importer"`
	Address       string               `json:"address"`
	Regime        string               `json:"regime"`
	DischargePort string               `json:"discharge_port"`
	OriginCountry string               `json:"origin_country"`
	Currency      string               `json:"currency"`
	Documents     []Document           `json:"documents"`
	Eligibility   *EligibilityAnalysis `json:"eligibility,omitempty"`
}

// NewDraft returns a draft pre-filled with the intake form defaults.
func NewDraft() DeclarationDraft {
	return DeclarationDraft{
		Importer:      "OLAM CÔTE D'IVOIRE",
		Address:       "Abidjan, Zone Industrielle Vridi",
		Regime:        RegimeDefinitiveImport,
		DischargePort: "Port d'Abidjan",
		OriginCountry: "Ghana",
		Currency:      "USD",
		Documents:     []Document{},
	}
}

// Set assigns a scalar field. Values are stored as given.
func (d *DeclarationDraft) Set(field DraftField, value string) error {
	switch field {
	case FieldImporter:
		d.Importer = value
	case FieldAddress:
		d.Address = value
	case FieldRegime:
		d.Regime = value
	case FieldDischargePort:
		d.DischargePort = value
	case FieldOriginCountry:
		d.OriginCountry = value
	case FieldCurrency:
		d.Currency = value
	default:
		return WrapError(ErrInvalidInput, "set draft field", fmt.Errorf("unknown field %q", field))
	}
	return nil
}

// UsableDocuments counts documents whose analysis did not fail.
func (d DeclarationDraft) UsableDocuments() int {
	n := 0
	for _, doc := range d.Documents {
		if doc.Status != DocumentError {
			n++
		}
	}
	return n
}

func (d DeclarationDraft) Clone() DeclarationDraft {
	out := d
	out.Documents = make([]Document, len(d.Documents))
	for i, doc := range d.Documents {
		out.Documents[i] = doc.clone()
	}
	if d.Eligibility != nil {
		analysis := *d.Eligibility
		out.Eligibility = &analysis
	}
	return out
}

// Declaration is a submitted draft. It is handed out by value with its
// slices copied, so holders cannot change the registry's record.
type Declaration struct {
	ID                  string              `json:"id"`
	Number              string              `json:"number"`
	Status              DeclarationStatus   `json:"status"`
	Importer            string              `json:"importer"`
	Address             string              `json:"address"`
	Regime              string              `json:"regime"`
	DischargePort       string              `json:"discharge_port"`
	OriginCountry       string              `json:"origin_country"`
	Currency            string              `json:"currency"`
	TotalValue          decimal.Decimal     `json:"total_value"`
	PreferentialSavings decimal.Decimal     `json:"preferential_savings"`
	Documents           []Document          `json:"documents"`
	Eligibility         EligibilityAnalysis `json:"eligibility"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// FinalizeDeclaration freezes a draft. It enforces the submit invariant:
// at least one document and a completed eligibility analysis.
func FinalizeDeclaration(draft DeclarationDraft, id, number string, totalValue decimal.Decimal, at time.Time) (Declaration, error) {
	if len(draft.Documents) == 0 {
		return Declaration{}, WrapError(ErrInvalidTransition, "finalize declaration", errors.New("draft has no documents"))
	}
	if draft.Eligibility == nil {
		return Declaration{}, WrapError(ErrInvalidTransition, "finalize declaration", errors.New("eligibility analysis missing"))
	}
	frozen := draft.Clone()
	return Declaration{
		ID:                  id,
		Number:              number,
		Status:              DeclarationSubmitted,
		Importer:            frozen.Importer,
		Address:             frozen.Address,
		Regime:              frozen.Regime,
		DischargePort:       frozen.DischargePort,
		OriginCountry:       frozen.OriginCountry,
		Currency:            frozen.Currency,
		TotalValue:          totalValue,
		PreferentialSavings: frozen.Eligibility.SavingsAmount,
		Documents:           frozen.Documents,
		Eligibility:         *frozen.Eligibility,
		CreatedAt:           at,
		UpdatedAt:           at,
	}, nil
}

func (d Declaration) Clone() Declaration {
	out := d
	out.Documents = make([]Document, len(d.Documents))
	for i, doc := range d.Documents {
		out.Documents[i] = doc.clone()
	}
	return out
}
