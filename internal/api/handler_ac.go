package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ir-hub-backend/internal/acstate"
	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/encode"
	"ir-hub-backend/internal/model"
)

// ACStateResponse is the JSON shape of an AC state.
type ACStateResponse struct {
	Protocol string `json:"protocol"`
	Power    bool   `json:"power"`
	Mode     string `json:"mode"`
	TempC    uint8  `json:"temp_c"`
	FanSpeed string `json:"fan_speed"`
	Swing    string `json:"swing"`
	Turbo    bool   `json:"turbo"`
	Quiet    bool   `json:"quiet"`
	Econo    bool   `json:"econo"`
	Clean    bool   `json:"clean"`
	Sleep    bool   `json:"sleep"`
	Filter   bool   `json:"filter"`
	Health   bool   `json:"health"`
	Display  bool   `json:"display"`
	Beep     bool   `json:"beep"`
	Light    bool   `json:"light"`
}

func newACStateResponse(s *acstate.State) ACStateResponse {
	return ACStateResponse{
		Protocol: s.Protocol.String(),
		Power:    s.Power,
		Mode:     s.Mode.String(),
		TempC:    s.TempC,
		FanSpeed: s.FanSpeed.String(),
		Swing:    s.Swing.String(),
		Turbo:    s.Turbo,
		Quiet:    s.Quiet,
		Econo:    s.Econo,
		Clean:    s.Clean,
		Sleep:    s.Sleep,
		Filter:   s.Filter,
		Health:   s.Health,
		Display:  s.Display,
		Beep:     s.Beep,
		Light:    s.Light,
	}
}

// acPatchRequest carries optional field mutations; absent fields keep
// their current value.
type acPatchRequest struct {
	Protocol *string `json:"protocol"`
	Power    *bool   `json:"power"`
	Mode     *string `json:"mode"`
	TempC    *uint8  `json:"temp_c"`
	FanSpeed *string `json:"fan_speed"`
	Swing    *string `json:"swing"`
	Turbo    *bool   `json:"turbo"`
	Quiet    *bool   `json:"quiet"`
	Econo    *bool   `json:"econo"`
	Clean    *bool   `json:"clean"`
	Sleep    *bool   `json:"sleep"`
	Filter   *bool   `json:"filter"`
	Health   *bool   `json:"health"`
	Display  *bool   `json:"display"`
	Beep     *bool   `json:"beep"`
	Light    *bool   `json:"light"`
}

type acMutationResponse struct {
	State    ACStateResponse  `json:"state"`
	Transmit TransmitResponse `json:"transmit"`
}

// GetAC handles GET /api/v1/devices/:device/ac.
func (h *Handler) GetAC(c *gin.Context) {
	device, ok := h.lookupDevice(c)
	if !ok {
		return
	}

	state, err := h.loadACState(c, device.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load ac state"})
		return
	}
	c.JSON(http.StatusOK, newACStateResponse(&state))
}

// PatchAC handles PATCH /api/v1/devices/:device/ac. Every accepted
// mutation re-encodes the complete frame: AC remotes transmit full state,
// so the response carries the symbol stream for this mutation.
func (h *Handler) PatchAC(c *gin.Context) {
	var req acPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.store.EnsureDevice(c.Request.Context(), c.Param("device"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve device"})
		return
	}

	state, err := h.loadACState(c, device.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load ac state"})
		return
	}

	if err := applyPatch(&state, &req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := acstate.Encode(&state)
	if errors.Is(err, ir.ErrNotSupported) || errors.Is(err, ir.ErrNotImplemented) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbols, err := encode.Frame(code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to encode frame"})
		return
	}

	cfg, err := model.NewACConfig(device.ID, &state)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to serialize ac state"})
		return
	}
	if err := h.store.SaveACState(c.Request.Context(), cfg); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to save ac state"})
		return
	}

	c.JSON(http.StatusOK, acMutationResponse{
		State: newACStateResponse(&state),
		Transmit: TransmitResponse{
			Protocol:   code.Protocol.String(),
			CarrierKHz: code.CarrierKHz,
			DutyCycle:  code.DutyCycle,
			Symbols:    symbols,
		},
	})
}

// loadACState returns the persisted state, or the power-off default when
// none has been saved yet.
func (h *Handler) loadACState(c *gin.Context, deviceID int64) (acstate.State, error) {
	cfg, err := h.store.GetACState(c.Request.Context(), deviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return acstate.Default(), nil
	}
	if err != nil {
		return acstate.State{}, err
	}
	return cfg.State()
}

func applyPatch(s *acstate.State, req *acPatchRequest) error {
	if req.Protocol != nil {
		p, err := ir.ParseProtocol(*req.Protocol)
		if err != nil {
			return err
		}
		s.Protocol = p
	}
	if req.Power != nil {
		s.Power = *req.Power
	}
	if req.Mode != nil {
		m, err := acstate.ParseMode(*req.Mode)
		if err != nil {
			return err
		}
		s.Mode = m
	}
	if req.TempC != nil {
		s.TempC = *req.TempC
	}
	if req.FanSpeed != nil {
		f, err := acstate.ParseFanSpeed(*req.FanSpeed)
		if err != nil {
			return err
		}
		s.FanSpeed = f
	}
	if req.Swing != nil {
		sw, err := acstate.ParseSwing(*req.Swing)
		if err != nil {
			return err
		}
		s.Swing = sw
	}
	if req.Turbo != nil {
		s.Turbo = *req.Turbo
	}
	if req.Quiet != nil {
		s.Quiet = *req.Quiet
	}
	if req.Econo != nil {
		s.Econo = *req.Econo
	}
	if req.Clean != nil {
		s.Clean = *req.Clean
	}
	if req.Sleep != nil {
		s.Sleep = *req.Sleep
	}
	if req.Filter != nil {
		s.Filter = *req.Filter
	}
	if req.Health != nil {
		s.Health = *req.Health
	}
	if req.Display != nil {
		s.Display = *req.Display
	}
	if req.Beep != nil {
		s.Beep = *req.Beep
	}
	if req.Light != nil {
		s.Light = *req.Light
	}
	return nil
}
