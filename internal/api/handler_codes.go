package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/encode"
	"ir-hub-backend/internal/model"
)

type learnRequest struct {
	Button  string      `json:"button" binding:"required"`
	Symbols []ir.Symbol `json:"symbols" binding:"required"`
}

type learnPendingResponse struct {
	Status     string `json:"status"`
	Validation string `json:"validation"`
	Protocol   string `json:"protocol"`
}

// Learn handles POST /api/v1/devices/:device/learn. Each captured frame
// is fed through multi-frame verification; the code is persisted only
// once enough matching frames confirm it.
func (h *Handler) Learn(c *gin.Context) {
	var req learnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, accepted, err := h.pipe.Learn(req.Symbols)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if !accepted {
		c.JSON(http.StatusAccepted, learnPendingResponse{
			Status:     "pending",
			Validation: validationNames[code.Validation],
			Protocol:   code.Protocol.String(),
		})
		return
	}

	device, err := h.store.EnsureDevice(c.Request.Context(), c.Param("device"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve device"})
		return
	}

	rec, err := model.NewLearnedCode(device.ID, req.Button, code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to serialize code"})
		return
	}
	if err := h.store.SaveCode(c.Request.Context(), rec); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to save code"})
		return
	}

	c.JSON(http.StatusCreated, newCodeResponse(code))
}

// DeviceResponse represents the API response for a single device.
type DeviceResponse struct {
	Name  string `json:"name"`
	Codes int64  `json:"codes"`
}

// ListDevices handles GET /api/v1/devices.
func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.store.ListDevices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list devices"})
		return
	}

	responses := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		codes, err := h.store.ListCodes(c.Request.Context(), d.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list codes"})
			return
		}
		responses = append(responses, DeviceResponse{Name: d.Name, Codes: int64(len(codes))})
	}
	c.JSON(http.StatusOK, responses)
}

type learnedCodeResponse struct {
	Button string `json:"button"`
	codeResponse
}

// ListCodes handles GET /api/v1/devices/:device/codes.
func (h *Handler) ListCodes(c *gin.Context) {
	device, ok := h.lookupDevice(c)
	if !ok {
		return
	}

	codes, err := h.store.ListCodes(c.Request.Context(), device.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list codes"})
		return
	}

	responses := make([]learnedCodeResponse, 0, len(codes))
	for i := range codes {
		code, err := codes[i].ToCode()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "corrupt stored code"})
			return
		}
		responses = append(responses, learnedCodeResponse{
			Button:       codes[i].Button,
			codeResponse: newCodeResponse(code),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetCode handles GET /api/v1/devices/:device/codes/:button.
func (h *Handler) GetCode(c *gin.Context) {
	code, ok := h.lookupCode(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, learnedCodeResponse{
		Button:       c.Param("button"),
		codeResponse: newCodeResponse(code),
	})
}

// DeleteCode handles DELETE /api/v1/devices/:device/codes/:button.
func (h *Handler) DeleteCode(c *gin.Context) {
	device, ok := h.lookupDevice(c)
	if !ok {
		return
	}

	err := h.store.DeleteCode(c.Request.Context(), device.ID, c.Param("button"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "code not found"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to delete code"})
		return
	}
	c.Status(http.StatusNoContent)
}

// TransmitResponse carries everything a transmitter needs to replay a
// learned code.
type TransmitResponse struct {
	Protocol       string      `json:"protocol"`
	CarrierKHz     uint16      `json:"carrier_khz"`
	DutyCycle      uint8       `json:"duty_cycle"`
	RepeatPeriodMS uint16      `json:"repeat_period_ms,omitempty"`
	Symbols        []ir.Symbol `json:"symbols"`
}

// Transmit handles POST /api/v1/devices/:device/codes/:button/transmit:
// it renders the stored code back into a symbol stream.
func (h *Handler) Transmit(c *gin.Context) {
	code, ok := h.lookupCode(c)
	if !ok {
		return
	}

	symbols, err := encode.Frame(code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := TransmitResponse{
		Protocol:   code.Protocol.String(),
		CarrierKHz: code.CarrierKHz,
		DutyCycle:  code.DutyCycle,
		Symbols:    symbols,
	}
	if constants, found := ir.LookupConstants(code.Protocol); found {
		resp.RepeatPeriodMS = constants.RepeatPeriod
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) lookupDevice(c *gin.Context) (*model.Device, bool) {
	device, err := h.store.GetDevice(c.Request.Context(), c.Param("device"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return nil, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve device"})
		return nil, false
	}
	return device, true
}

func (h *Handler) lookupCode(c *gin.Context) (*ir.Code, bool) {
	device, ok := h.lookupDevice(c)
	if !ok {
		return nil, false
	}

	rec, err := h.store.GetCode(c.Request.Context(), device.ID, c.Param("button"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "code not found"})
		return nil, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load code"})
		return nil, false
	}

	code, err := rec.ToCode()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "corrupt stored code"})
		return nil, false
	}
	return code, true
}
