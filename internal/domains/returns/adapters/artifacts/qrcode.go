package artifacts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// QRCodeSize is the edge length of the rendered PNG in pixels.
const QRCodeSize = 300

const pngDataURIPrefix = "data:image/png;base64,"

var _ ports.QRCodeGenerator = (*QRCodeGenerator)(nil)

// QRCodeGenerator renders drop-off QR codes as PNG data URIs.
type QRCodeGenerator struct {
	level qrcode.RecoveryLevel
	size  int
}

func NewQRCodeGenerator() *QRCodeGenerator {
	return &QRCodeGenerator{level: qrcode.Medium, size: QRCodeSize}
}

// Payload is the text encoded in the QR code that store associates scan at drop-off.
func Payload(request *domain.ReturnRequest) string {
	return fmt.Sprintf("RMA:%s|Order:%s|Customer:%s|Method:STORE|Date:%s",
		request.RMANumber, request.OrderNumber, request.CustomerID, request.RequestedDate.Format("2006-01-02"))
}

func (g *QRCodeGenerator) Generate(_ context.Context, request *domain.ReturnRequest) (string, error) {
	if request == nil {
		return "", errors.New("return request is nil")
	}
	png, err := qrcode.Encode(Payload(request), g.level, g.size)
	if err != nil {
		return "", err
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
