package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

const (
	EtherscanSource  = "etherscan"
	EtherscanBaseURL = "https://api.etherscan.io/api"
)

// Gas oracle result fields, in gwei.
const (
	FieldFast     = "FastGasPrice"
	FieldStandard = "ProposeGasPrice"
	FieldSlow     = "SafeGasPrice"
)

// EtherscanClient reads the gas tracker oracle.
type EtherscanClient struct {
	baseClient
	key string
}

func NewEtherscanClient(key string, options ...Option) *EtherscanClient {
	return &EtherscanClient{
		baseClient: newBaseClient(EtherscanSource, EtherscanBaseURL, options),
		key:        key,
	}
}

// Name identifies the oracle in logs and metrics.
func (c *EtherscanClient) Name() string { return c.source }

// GasReading fetches and decodes one oracle reading.
func (c *EtherscanClient) GasReading(ctx context.Context) (models.GasReading, error) {
	query := url.Values{}
	query.Set("module", "gastracker")
	query.Set("action", "gasoracle")
	query.Set("apikey", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return models.GasReading{}, fmt.Errorf("creating request: %w", err)
	}
	res, err := c.do(req)
	if err != nil {
		return models.GasReading{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return models.GasReading{}, &FetchError{Source: c.source, Err: err}
	}
	return DecodeGasOracle(body)
}

// DecodeGasOracle extracts the three fee tiers from a gas oracle payload.
// A result that is not an object (Etherscan sends a message string on
// errors) or that lacks a tier yields a *ParseError naming the field.
func DecodeGasOracle(body []byte) (models.GasReading, error) {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.GasReading{}, &ParseError{Source: EtherscanSource, Field: "body", Err: err}
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Result, &result); err != nil || result == nil {
		if err == nil {
			err = ErrMissingField
		}
		return models.GasReading{}, &ParseError{Source: EtherscanSource, Field: "result", Err: err}
	}

	tiers := make([]decimal.Decimal, 0, 3)
	for _, field := range []string{FieldFast, FieldStandard, FieldSlow} {
		v, err := tierValue(result, field)
		if err != nil {
			return models.GasReading{}, &ParseError{Source: EtherscanSource, Field: field, Err: err}
		}
		tiers = append(tiers, v)
	}

	return models.GasReading{
		Fast:     tiers[0],
		Standard: tiers[1],
		Slow:     tiers[2],
		Source:   EtherscanSource,
	}, nil
}

// tierValue accepts the numeric string Etherscan sends as well as a bare
// JSON number.
func tierValue(result map[string]json.RawMessage, field string) (decimal.Decimal, error) {
	raw, ok := result[field]
	if !ok || string(raw) == "null" {
		return decimal.Decimal{}, ErrMissingField
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return decimal.Decimal{}, fmt.Errorf("unexpected value %s", raw)
		}
		s = n.String()
	}
	if s == "" {
		return decimal.Decimal{}, ErrMissingField
	}
	return decimal.NewFromString(s)
}
