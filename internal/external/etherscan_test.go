package external_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kjannette/sidebar-pricebot/internal/external"
)

func TestDecodeGasOracle(t *testing.T) {
	t.Parallel()

	r, err := external.DecodeGasOracle([]byte(`{
		"status": "1",
		"message": "OK",
		"result": {"LastBlock": "19000000", "SafeGasPrice": "20", "ProposeGasPrice": "30", "FastGasPrice": "50"}
	}`))
	require.NoError(t, err)
	require.Equal(t, "50", r.Fast.String())
	require.Equal(t, "30", r.Standard.String())
	require.Equal(t, "20", r.Slow.String())
	require.Equal(t, external.EtherscanSource, r.Source)
}

func TestDecodeGasOracle_AcceptsNumbers(t *testing.T) {
	t.Parallel()

	r, err := external.DecodeGasOracle([]byte(`{"result": {"SafeGasPrice": 1.5, "ProposeGasPrice": 2, "FastGasPrice": 3.25}}`))
	require.NoError(t, err)
	require.Equal(t, "3.25", r.Fast.String())
	require.Equal(t, "1.5", r.Slow.String())
}

func TestDecodeGasOracle_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing standard", body: `{"result": {"SafeGasPrice": "20", "FastGasPrice": "50"}}`, wantField: external.FieldStandard},
		{name: "missing fast", body: `{"result": {"SafeGasPrice": "20", "ProposeGasPrice": "30"}}`, wantField: external.FieldFast},
		{name: "null slow", body: `{"result": {"SafeGasPrice": null, "ProposeGasPrice": "30", "FastGasPrice": "50"}}`, wantField: external.FieldSlow},
		{name: "not numeric", body: `{"result": {"SafeGasPrice": "20", "ProposeGasPrice": "abc", "FastGasPrice": "50"}}`, wantField: external.FieldStandard},
		{name: "error string result", body: `{"status": "0", "message": "NOTOK", "result": "Invalid API Key"}`, wantField: "result"},
		{name: "no result", body: `{"status": "1"}`, wantField: "result"},
		{name: "not json", body: `<html>`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := external.DecodeGasOracle([]byte(tt.body))

			var pe *external.ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tt.wantField, pe.Field)
		})
	}
}

func TestEtherscanGasReading(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			require.Equal(t, "gastracker", q.Get("module"))
			require.Equal(t, "gasoracle", q.Get("action"))
			require.Equal(t, "KEY", q.Get("apikey"))
			return jsonResponse(http.StatusOK, `{"result": {"SafeGasPrice": "20", "ProposeGasPrice": "30", "FastGasPrice": "50"}}`), nil
		}).
		Times(1)

	client := external.NewEtherscanClient("KEY", external.WithHTTPClient(httpClient))
	r, err := client.GasReading(t.Context())
	require.NoError(t, err)
	require.Equal(t, "50", r.Fast.String())
}

func TestEtherscanGasReading_NonSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusForbidden, ``), nil).Times(1)

	client := external.NewEtherscanClient("KEY", external.WithHTTPClient(httpClient))
	_, err := client.GasReading(t.Context())

	var fe *external.FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusForbidden, fe.StatusCode)
}
