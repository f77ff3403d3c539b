package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"xrplutter/gateway/internal/config"
	"xrplutter/gateway/internal/metrics"
	"xrplutter/gateway/pkg/response"
)

// RPCHandler forwards JSON-RPC bodies verbatim to the configured XRPL node,
// so browser clients avoid cross-origin calls to the node itself.
type RPCHandler struct {
	endpoint   string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewRPCHandler(cfg config.XRPLConfig, m *metrics.Metrics) *RPCHandler {
	return &RPCHandler{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		metrics: m,
	}
}

func (h *RPCHandler) Proxy(c *gin.Context) {
	if !hasJSONContentType(c) {
		response.BadRequest(c, "content-type must be application/json")
		return
	}

	// Validated per request so a bad XRPL_ENDPOINT shows up as a clear 500
	// instead of failing at startup for an endpoint nobody may ever call.
	endpoint, err := url.Parse(h.endpoint)
	if err != nil || (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		response.InternalError(c, "server misconfigured: invalid XRPL_ENDPOINT")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		h.metrics.UpstreamError("xrpl")
		response.Error(c, 502, "bad gateway")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.metrics.UpstreamError("xrpl")
		c.JSON(502, gin.H{"error": "bad gateway", "message": err.Error()})
		return
	}
	defer resp.Body.Close()

	upstream, err := io.ReadAll(resp.Body)
	if err != nil {
		h.metrics.UpstreamError("xrpl")
		c.JSON(502, gin.H{"error": "bad gateway", "message": err.Error()})
		return
	}
	c.Data(resp.StatusCode, "application/json", upstream)
}
