// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pricing"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

// Service renders order receipts
type Service struct {
	storeName string
	dpi       uint
	now       func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		storeName: cfg.Receipt.StoreName,
		dpi:       cfg.Receipt.DPI,
		now:       time.Now,
	}
}

// ReceiptData is what the receipt template prints
type ReceiptData struct {
	StoreName       string
	ReceiptNumber   string
	PrintedOn       string
	PlacedOn        string
	Status          string
	PaymentType     string
	ShippingAddress string
	Lines           []ReceiptLine
	Total           string
}

// ReceiptLine is one purchased product. Prices come from the purchase
// snapshot, never from the current catalog.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// BuildReceipt prepares the template data for an order
func (s *Service) BuildReceipt(o order.Order) ReceiptData {
	lines := make([]ReceiptLine, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		lines = append(lines, ReceiptLine{
			ProductName: item.ProductName(),
			Quantity:    item.Quantity,
			UnitPrice:   pricing.PesoGrouped(item.PriceAtPurchase),
			Subtotal:    pricing.PesoGrouped(item.Subtotal()),
		})
	}

	paymentType := o.PaymentType
	if paymentType == "" {
		paymentType = "N/A"
	}

	return ReceiptData{
		StoreName:       s.storeName,
		ReceiptNumber:   fmt.Sprintf("OR-%06d", o.ID),
		PrintedOn:       s.now().Format("January 2, 2006 3:04 PM"),
		PlacedOn:        o.CreatedAt.Local().Format("01/02/2006 at 3:04:05 PM"),
		Status:          strings.ToUpper(string(o.Status)),
		PaymentType:     paymentType,
		ShippingAddress: o.ShippingAddress,
		Lines:           lines,
		Total:           pricing.PesoGrouped(o.TotalAmount),
	}
}

// RenderHTML executes the receipt template
func (s *Service) RenderHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateReceipt renders an order receipt to PDF with wkhtmltopdf
func (s *Service) GenerateReceipt(o order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(s.BuildReceipt(o))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(s.dpi)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterCenter.Set("Thank you for shopping with us!")
	page.FooterFontSize.Set(8)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #222; font-size: 12px; }
        .store { text-align: center; font-size: 22px; font-weight: bold; letter-spacing: 2px; }
        .meta { text-align: center; color: #666; margin-bottom: 18px; }
        .details td { padding: 2px 8px 2px 0; }
        .items { width: 100%; border-collapse: collapse; margin-top: 16px; }
        .items th { border-bottom: 1px solid #333; text-align: left; padding: 6px 4px; }
        .items td { border-bottom: 1px dashed #ccc; padding: 6px 4px; }
        .num { text-align: right; }
        .total { margin-top: 14px; text-align: right; font-size: 16px; font-weight: bold; }
    </style>
</head>
<body>
    <div class="store">{{.StoreName}}</div>
    <div class="meta">Official Receipt {{.ReceiptNumber}} &middot; Printed {{.PrintedOn}}</div>

    <table class="details">
        <tr><td>Placed on</td><td>{{.PlacedOn}}</td></tr>
        <tr><td>Status</td><td>{{.Status}}</td></tr>
        <tr><td>Payment</td><td>{{.PaymentType}}</td></tr>
        {{if .ShippingAddress}}<tr><td>Ship to</td><td>{{.ShippingAddress}}</td></tr>{{end}}
    </table>

    <table class="items">
        <thead>
            <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Subtotal</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="total">Total: {{.Total}}</div>
</body>
</html>
`
