package domain

import "testing"

func TestClassifyFilename(t *testing.T) {
	cases := map[string]DocumentType{
		"Facture_Commerciale_OLAM.pdf": DocumentInvoice,
		"facture.pdf":                  DocumentInvoice,
		"CONNAISSEMENT maritime.pdf":   DocumentBillOfLading,
		"certificat-origine-ghana.pdf": DocumentCertificateOfOrigin,
		"liste_colisage.xlsx":          DocumentPackingList,
		"scan-0042.jpg":                DocumentPackingList,
		"facture_et_certificat.pdf":    DocumentInvoice,
		"connaissement_certificat.pdf": DocumentBillOfLading,
	}
	for name, want := range cases {
		if got := ClassifyFilename(name); got != want {
			t.Fatalf("ClassifyFilename(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestExtractedDataReportsItsDocumentType(t *testing.T) {
	var data ExtractedData = CertificateOfOriginData{OriginCountry: "Ghana"}
	if data.DocumentType() != DocumentCertificateOfOrigin {
		t.Fatalf("unexpected type %s", data.DocumentType())
	}
}
