package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"maison/globals"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// TrackingPayload returns the signed QR payload for an order:
// orderId|trackingId|timestamp|signature.
func TrackingPayload(orderID, trackingID string, at time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, trackingID, at.Unix())
	h := hmac.New(sha256.New, globals.HmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyTrackingPayload checks the signature on a scanned payload.
func VerifyTrackingPayload(payload string) bool {
	idx := lastPipe(payload)
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]
	h := hmac.New(sha256.New, globals.HmacSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

func lastPipe(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '|' {
			return i
		}
	}
	return -1
}

// PrintInvoice renders the order as an A4 PDF with a QR code carrying the
// signed tracking payload.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(TrackingPayload(order.OrderID, order.TrackingID, time.Now()), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := buildInvoicePDF(order, qrPNG)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.OrderID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func buildInvoicePDF(order *models.Order, qrPNG []byte) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.OrderStatus))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s (%s)", order.PaymentStatus, order.PaymentProvider))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 8, "Item")
	pdf.Cell(30, 8, "Qty")
	pdf.Cell(30, 8, "Price")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, it := range order.Items {
		pdf.Cell(90, 8, it.Name)
		pdf.Cell(30, 8, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", it.Price))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.TotalAmount))
	pdf.Ln(12)

	addr := order.ShippingAddress
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Ship to:")
	pdf.Ln(8)
	pdf.Cell(0, 8, addr.Street)
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.ZipCode))
	pdf.Ln(8)
	pdf.Cell(0, 8, addr.Country)
	pdf.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("tracking-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("tracking-qr", 150, 20, 40, 40, false, opts, 0, "")

	return pdf
}
