package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xrplutter/gateway/internal/metrics"
	"xrplutter/gateway/internal/service"
	"xrplutter/gateway/internal/xumm"
	"xrplutter/gateway/pkg/response"
)

const maxTxJSONBytes = 4000

// PayloadHandler fronts the XUMM payload API. The vendor stays the system of
// record; the local store only keeps an advisory mirror of the last observed
// status.
type PayloadHandler struct {
	client   *xumm.Client
	sessions *service.SessionService
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewPayloadHandler(client *xumm.Client, sessions *service.SessionService, logger *zap.Logger, m *metrics.Metrics) *PayloadHandler {
	return &PayloadHandler{client: client, sessions: sessions, logger: logger, metrics: m}
}

type createPayloadRequest struct {
	TxJSON json.RawMessage `json:"tx_json"`
}

func (h *PayloadHandler) Create(c *gin.Context) {
	if !hasJSONContentType(c) {
		response.BadRequest(c, "content-type must be application/json")
		return
	}
	if !h.client.Configured() {
		response.InternalError(c, "missing xumm api credentials")
		return
	}

	// An empty body is fine: absent tx_json falls back to a SignIn payload.
	req := createPayloadRequest{}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid request body")
		return
	}
	txJSON := req.TxJSON
	if len(txJSON) == 0 {
		txJSON = json.RawMessage(`{"TransactionType":"SignIn"}`)
	}

	var tx map[string]interface{}
	if err := json.Unmarshal(txJSON, &tx); err != nil || tx == nil {
		response.BadRequest(c, "tx_json must be an object")
		return
	}
	if len(txJSON) > maxTxJSONBytes {
		response.Error(c, 413, "tx_json too large")
		return
	}
	if txType, _ := tx["TransactionType"].(string); txType == "" {
		response.BadRequest(c, "TransactionType required")
		return
	}

	result, err := h.client.CreatePayload(c.Request.Context(), txJSON)
	if err != nil {
		h.metrics.UpstreamError("xumm")
		var statusErr *xumm.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(statusErr.StatusCode, gin.H{
				"error":  "xumm create failed",
				"status": statusErr.StatusCode,
				"body":   statusErr.Body,
			})
			return
		}
		response.Error(c, 502, "bad gateway")
		return
	}

	// Advisory mirror; the signing flow does not depend on it.
	if err := h.sessions.MirrorPayload(c.Request.Context(), result.PayloadID, service.PayloadStatus{}); err != nil {
		h.logger.Warn("payload mirror write failed", zap.Error(err))
	}

	c.JSON(200, gin.H{
		"payloadId": result.PayloadID,
		"deepLink":  result.DeepLink,
		"qrUrl":     result.QRURL,
	})
}

func (h *PayloadHandler) Status(c *gin.Context) {
	if !h.client.Configured() {
		response.InternalError(c, "missing xumm api credentials")
		return
	}
	id := c.Param("payloadId")
	if !isUUIDv4(id) {
		response.BadRequest(c, "invalid payloadId")
		return
	}

	result, err := h.client.PayloadStatus(c.Request.Context(), id)
	if err != nil {
		h.metrics.UpstreamError("xumm")
		var statusErr *xumm.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(statusErr.StatusCode, gin.H{
				"error":  "xumm status failed",
				"status": statusErr.StatusCode,
				"body":   statusErr.Body,
			})
			return
		}
		response.Error(c, 502, "bad gateway")
		return
	}

	status := service.PayloadStatus{
		Opened:   result.Opened,
		Signed:   result.Signed,
		Rejected: result.Rejected,
		TxHash:   result.TxHash,
		TxBlob:   result.TxBlob,
	}
	if err := h.sessions.MirrorPayload(c.Request.Context(), id, status); err != nil {
		h.logger.Warn("payload mirror write failed", zap.Error(err))
	}

	c.JSON(200, status)
}

func hasJSONContentType(c *gin.Context) bool {
	ct := strings.ToLower(c.GetHeader("Content-Type"))
	return strings.Contains(ct, "application/json")
}
