package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ir-hub-backend/config"
	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
	"ir-hub-backend/internal/ir/encode"
	"ir-hub-backend/internal/model"
	"ir-hub-backend/internal/pipeline"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	nextID  int64
	devices map[string]*model.Device
	codes   map[string]*model.LearnedCode
	ac      map[int64]*model.ACConfig
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		devices: make(map[string]*model.Device),
		codes:   make(map[string]*model.LearnedCode),
		ac:      make(map[int64]*model.ACConfig),
	}
}

func codeKey(deviceID int64, button string) string {
	return fmt.Sprintf("%d/%s", deviceID, button)
}

func (f *fakeStore) EnsureDevice(_ context.Context, name string) (*model.Device, error) {
	if d, ok := f.devices[name]; ok {
		return d, nil
	}
	f.nextID++
	d := &model.Device{ID: f.nextID, Name: name}
	f.devices[name] = d
	return d, nil
}

func (f *fakeStore) GetDevice(_ context.Context, name string) (*model.Device, error) {
	if d, ok := f.devices[name]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListDevices(_ context.Context) ([]model.Device, error) {
	out := make([]model.Device, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) SaveCode(_ context.Context, code *model.LearnedCode) error {
	f.codes[codeKey(code.DeviceID, code.Button)] = code
	return nil
}

func (f *fakeStore) GetCode(_ context.Context, deviceID int64, button string) (*model.LearnedCode, error) {
	if c, ok := f.codes[codeKey(deviceID, button)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListCodes(_ context.Context, deviceID int64) ([]model.LearnedCode, error) {
	var out []model.LearnedCode
	for _, c := range f.codes {
		if c.DeviceID == deviceID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Button < out[j].Button })
	return out, nil
}

func (f *fakeStore) DeleteCode(_ context.Context, deviceID int64, button string) error {
	key := codeKey(deviceID, button)
	if _, ok := f.codes[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.codes, key)
	return nil
}

func (f *fakeStore) SaveACState(_ context.Context, cfg *model.ACConfig) error {
	f.ac[cfg.DeviceID] = cfg
	return nil
}

func (f *fakeStore) GetACState(_ context.Context, deviceID int64) (*model.ACConfig, error) {
	if cfg, ok := f.ac[deviceID]; ok {
		return cfg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := newFakeStore()
	pipe := pipeline.New(pipeline.Options{VerifyFrames: 2})
	cfg := &config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTLSeconds: 1}
	return NewRouter(NewHandler(s, pipe), cfg), s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func necSymbols(t *testing.T, address, command uint8) []ir.Symbol {
	t.Helper()
	code := ir.Code{Protocol: ir.ProtocolNEC, Data: decode.PackNEC(address, command), Bits: 32}
	symbols, err := encode.Frame(&code)
	require.NoError(t, err)
	return symbols
}

func TestDecodeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("nec", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/decode",
			gin.H{"symbols": necSymbols(t, 0x04, 0x08)})
		require.Equal(t, http.StatusOK, w.Code)

		var resp codeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NEC", resp.Protocol)
		assert.Equal(t, uint16(0x08), resp.Command)
		assert.Equal(t, "single_frame", resp.Validation)
	})

	t.Run("undecodable", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/decode",
			gin.H{"symbols": []ir.Symbol{{Mark: 1000, Space: 3000}}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("bad json", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/decode", gin.H{"symbols": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLearnEndpoint(t *testing.T) {
	r, s := newTestRouter(t)
	body := gin.H{"button": "power", "symbols": necSymbols(t, 0x04, 0x08)}

	// First frame is buffered, not yet accepted.
	w := doJSON(t, r, http.MethodPost, "/api/v1/devices/living_room_tv/learn", body)
	require.Equal(t, http.StatusAccepted, w.Code)

	var pending learnPendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Equal(t, "pending", pending.Status)
	assert.Equal(t, "single_frame", pending.Validation)

	// Second matching frame confirms and persists.
	w = doJSON(t, r, http.MethodPost, "/api/v1/devices/living_room_tv/learn", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp codeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "two_frames", resp.Validation)

	device, err := s.GetDevice(context.Background(), "living_room_tv")
	require.NoError(t, err)
	saved, err := s.GetCode(context.Background(), device.ID, "power")
	require.NoError(t, err)
	assert.Equal(t, "NEC", saved.Protocol)
	assert.Equal(t, uint16(0x08), saved.Command)
}

func TestCodeEndpoints(t *testing.T) {
	r, s := newTestRouter(t)

	device, err := s.EnsureDevice(context.Background(), "tv")
	require.NoError(t, err)
	code := &ir.Code{
		Protocol: ir.ProtocolNEC, Data: decode.PackNEC(0x04, 0x08),
		Bits: 32, Address: 0x04, Command: 0x08, CarrierKHz: 38, DutyCycle: 33,
	}
	rec, err := model.NewLearnedCode(device.ID, "power", code)
	require.NoError(t, err)
	require.NoError(t, s.SaveCode(context.Background(), rec))

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/devices/tv/codes", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []learnedCodeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "power", resp[0].Button)
		assert.Equal(t, "NEC", resp[0].Protocol)
	})

	t.Run("transmit", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/devices/tv/codes/power/transmit", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TransmitResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NEC", resp.Protocol)
		assert.Equal(t, uint16(38), resp.CarrierKHz)
		assert.Len(t, resp.Symbols, 34)
	})

	t.Run("unknown device", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/devices/nope/codes/power", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown button", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/devices/tv/codes/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/v1/devices/tv/codes/power", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodDelete, "/api/v1/devices/tv/codes/power", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestACEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("patch creates device and state", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/devices/bedroom_ac/ac", gin.H{
			"protocol": "DAIKIN",
			"power":    true,
			"temp_c":   22,
			"mode":     "cool",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp acMutationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "DAIKIN", resp.State.Protocol)
		assert.True(t, resp.State.Power)
		assert.Equal(t, uint8(22), resp.State.TempC)
		assert.Len(t, resp.Transmit.Symbols, 220)
	})

	t.Run("get returns persisted state", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/devices/bedroom_ac/ac", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ACStateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint8(22), resp.TempC)
		assert.Equal(t, "cool", resp.Mode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/devices/bedroom_ac/ac",
			gin.H{"mode": "defrost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects non-ac protocol", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/devices/bedroom_ac/ac",
			gin.H{"protocol": "NEC"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects out of range temperature", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/devices/bedroom_ac/ac",
			gin.H{"temp_c": 35})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProtocolsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/protocols", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []ProtocolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	byName := make(map[string]ProtocolResponse, len(resp))
	for _, p := range resp {
		byName[p.Name] = p
	}
	nec, ok := byName["NEC"]
	require.True(t, ok)
	assert.Equal(t, uint16(38), nec.CarrierKHz)
	assert.Equal(t, uint16(32), nec.Bits)
	assert.False(t, nec.AC)

	daikin, ok := byName["DAIKIN"]
	require.True(t, ok)
	assert.True(t, daikin.AC)
}
