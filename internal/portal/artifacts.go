package portal

import (
	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// ArtifactKind tells the success screen how to render an artifact.
type ArtifactKind int

const (
	// ArtifactQRCode is a PNG data URI to show at the store counter.
	ArtifactQRCode ArtifactKind = iota
	// ArtifactShippingLabel is a printable label link.
	ArtifactShippingLabel
)

// Artifact is one rendered piece of the return instructions.
type Artifact struct {
	Kind           ArtifactKind
	Value          string
	TrackingNumber string
}

// Artifacts picks what the success screen renders. The method selects the
// artifact kind; the artifact is rendered only when the server filled its field.
func Artifacts(response rma.ReturnResponse) []Artifact {
	switch response.Method {
	case returndomain.MethodDropOffStore:
		if response.QRCodeData == "" {
			return nil
		}
		return []Artifact{{Kind: ArtifactQRCode, Value: response.QRCodeData}}
	case returndomain.MethodShipToWarehouse:
		if response.ShippingLabelURL == "" {
			return nil
		}
		return []Artifact{{
			Kind:           ArtifactShippingLabel,
			Value:          response.ShippingLabelURL,
			TrackingNumber: response.TrackingNumber,
		}}
	}
	return nil
}
