package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// PrintInvoice renders a PDF invoice for one order, with a QR code linking
// to the order tracking page. Buyer or shop owner only.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, ok := loadOrderFor(ctx, w, userID, ps.ByName("orderid"))
	if !ok {
		return
	}

	trackBase := os.Getenv("APP_BASE_URL")
	if trackBase == "" {
		trackBase = "http://localhost:8080"
	}
	qrPNG, err := qrcode.Encode(fmt.Sprintf("%s/orders/%s", trackBase, order.OrderNumber), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Order Number: %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Seller: %s", order.ShopName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Deliver To: %s, %s, %s, %s %s",
		order.Address.Recipient, order.Address.Street, order.Address.City,
		order.Address.Province, order.Address.PostalCode))
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.Snapshot.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("R%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("R%.2f", float64(item.Quantity)*item.UnitPrice), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(150, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("R%.2f", order.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, fmt.Sprintf("Shipping (%s)", order.ShippingMethod), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("R%.2f", order.ShippingCost), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "VAT (15%)", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("R%.2f", order.Tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("R%.2f", order.Total), "", 1, "R", false, 0, "")

	// QR code for order tracking
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("order-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("order-qr", 10, pdf.GetY()+8, 35, 35, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", order.OrderNumber))
	w.Write(buf.Bytes())
}
