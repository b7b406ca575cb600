package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
)

// ProtocolResponse describes one supported protocol.
type ProtocolResponse struct {
	Name       string `json:"name"`
	CarrierKHz uint16 `json:"carrier_khz"`
	Bits       uint16 `json:"bits,omitempty"`
	AC         bool   `json:"ac"`
}

// ListProtocols handles GET /api/v1/protocols: the protocols the decoder
// chain recognizes, with their carrier and fixed bit counts.
func (h *Handler) ListProtocols(c *gin.Context) {
	var responses []ProtocolResponse
	for _, d := range decode.DefaultChain() {
		p := d.Protocol()
		constants, ok := ir.LookupConstants(p)
		if !ok {
			continue // the universal fallback carries no fixed timing
		}
		responses = append(responses, ProtocolResponse{
			Name:       p.String(),
			CarrierKHz: constants.CarrierKHz,
			Bits:       constants.Bits,
			AC:         p.IsAC(),
		})
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].Name < responses[j].Name })
	c.JSON(http.StatusOK, responses)
}
