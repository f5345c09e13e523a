// internal/api/handlers/ledger_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ecofreight-api-server/internal/ledger"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	Ledger *ledger.Ledger
}

type VerifyRequest struct {
	ShipmentID string          `json:"shipmentID" binding:"required"`
	EventType  string          `json:"eventType" binding:"required"`
	Details    json.RawMessage `json:"details"`
}

// Verify anchors an arbitrary shipment event and echoes back the fabricated
// receipt. This stands in for the original serverless verification function.
func (h *LedgerHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var details interface{}
	if len(req.Details) > 0 {
		details = req.Details
	}

	event, err := h.Ledger.Submit(context.Background(), req.ShipmentID, req.EventType, details)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit transaction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "verified",
		"txHash":      event.TxHash,
		"blockNumber": event.BlockNumber,
		"network":     event.Network,
		"timestamp":   event.Timestamp,
	})
}

// GetRecentTransactions returns the in-memory tail of fabricated transactions.
func (h *LedgerHandler) GetRecentTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"network":      h.Ledger.Network(),
		"transactions": h.Ledger.Tail(),
	})
}
