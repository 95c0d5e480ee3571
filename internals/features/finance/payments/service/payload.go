package service

import (
	"fmt"
	"strings"
)

// GatewayPayload is the callback body exactly as the gateway sent it.
// Stored verbatim; only a couple of fields are read back.
type GatewayPayload map[string]any

func (p GatewayPayload) str(keys ...string) string {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// Status is the gateway's own status word (settlement, VALID, FAILED, ...).
func (p GatewayPayload) Status() string {
	return p.str("transaction_status", "status")
}

func (p GatewayPayload) RedirectURL() string {
	return p.str("redirect_url", "GatewayPageURL")
}

// RequestMetadata identifies who delivered a request.
type RequestMetadata struct {
	IPAddress string
	UserAgent string
}
