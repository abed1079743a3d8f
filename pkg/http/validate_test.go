package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeRequest struct {
	Code    string `param:"code" json:"code" validate:"required,uppercase"`
	Periods int    `query:"periods" json:"periods" default:"3" validate:"gte=1,lte=100"`
	Format  string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
}

func bindProbe(target, code string) (*probeRequest, interface{}) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
	c.SetParamNames("code")
	c.SetParamValues(code)
	req := &probeRequest{}
	return req, ReadAndValidateRequest(c, req)
}

func TestReadAndValidateRequestDefaults(t *testing.T) {
	req, verr := bindProbe("/indicators/UNRATE", "UNRATE")
	require.Nil(t, verr)
	assert.Equal(t, "UNRATE", req.Code)
	assert.Equal(t, 3, req.Periods)
	assert.Equal(t, "json", req.Format)
}

func TestReadAndValidateRequestFieldErrors(t *testing.T) {
	_, verr := bindProbe("/indicators/unrate?format=xml&periods=500", "unrate")
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 3)

	assert.Equal(t, "ERR_UPPERCASE", errs[0].Code)
	assert.Equal(t, "code", errs[0].Field)
	assert.Equal(t, "ERR_LTE", errs[1].Code)
	assert.Equal(t, "periods", errs[1].Field)
	assert.Equal(t, "100", errs[1].Params["max"])
	assert.Equal(t, "ERR_ONEOF", errs[2].Code)
	assert.Equal(t, []string{"json", "text"}, errs[2].Params["options"])
}

func TestReadAndValidateRequestBindError(t *testing.T) {
	_, verr := bindProbe("/indicators/UNRATE?periods=abc", "UNRATE")
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_BIND", errs[0].Code)
}
