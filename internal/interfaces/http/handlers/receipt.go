// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReceiptRenderer turns an order into a PDF
type ReceiptRenderer interface {
	GenerateReceipt(o order.Order) (*bytes.Buffer, error)
}

// ReceiptHandler handles receipt downloads
type ReceiptHandler struct {
	renderer ReceiptRenderer
	logger   *logrus.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(renderer ReceiptRenderer, logger *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		renderer: renderer,
		logger:   logger,
	}
}

// DownloadReceipt handles GET /orders/:id/receipt. Only orders already in the
// shopper's history can be printed.
func (h *ReceiptHandler) DownloadReceipt(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	o, found := ws.Orders().Find(orderID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	pdfBuffer, err := h.renderer.GenerateReceipt(o)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", orderID).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-order-%d.pdf", orderID)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
