package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSONReadsBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Batom Matte"}`))
	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON(req, &target))
	require.Equal(t, "Batom Matte", target.Name)
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var target struct {
		Name string `json:"name"`
	}
	require.Error(t, DecodeJSON(req, &target))
}
