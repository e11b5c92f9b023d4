// Package ethereum reads fee tiers from an Ethereum JSON-RPC node.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/kjannette/sidebar-pricebot/internal/external"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

const Source = "rpc"

// DefaultBlocks is how many recent blocks a reading averages over.
const DefaultBlocks = 20

// Reward percentiles for slow, standard and fast.
var percentiles = []float64{10, 50, 90}

type feeHistoryReader interface {
	FeeHistory(ctx context.Context, blockCount uint64, lastBlock *big.Int, rewardPercentiles []float64) (*geth.FeeHistory, error)
	Close()
}

// Client turns eth_feeHistory into gas tiers: the next block's base fee
// plus the mean priority fee paid at each percentile.
type Client struct {
	rpc    feeHistoryReader
	blocks uint64
}

func NewClient(rpcURL string) (*Client, error) {
	rpc, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC: %w", err)
	}
	return &Client{rpc: rpc, blocks: DefaultBlocks}, nil
}

func (c *Client) Name() string { return Source }
func (c *Client) Close()       { c.rpc.Close() }

// GasReading samples the latest blocks and returns tiers in gwei.
func (c *Client) GasReading(ctx context.Context) (models.GasReading, error) {
	h, err := c.rpc.FeeHistory(ctx, c.blocks, nil, percentiles)
	if err != nil {
		return models.GasReading{}, &external.FetchError{Source: Source, Err: err}
	}
	return tiersFromHistory(h)
}

func tiersFromHistory(h *geth.FeeHistory) (models.GasReading, error) {
	if h == nil || len(h.BaseFee) == 0 {
		return models.GasReading{}, &external.ParseError{Source: Source, Field: "baseFeePerGas", Err: external.ErrMissingField}
	}
	next := h.BaseFee[len(h.BaseFee)-1]
	if next == nil {
		return models.GasReading{}, &external.ParseError{Source: Source, Field: "baseFeePerGas", Err: external.ErrMissingField}
	}

	tiers := make([]decimal.Decimal, len(percentiles))
	for i := range percentiles {
		tip, err := meanReward(h.Reward, i)
		if err != nil {
			return models.GasReading{}, &external.ParseError{Source: Source, Field: "reward", Err: err}
		}
		total := new(big.Int).Add(next, tip)
		tiers[i] = weiToGwei(total)
	}

	return models.GasReading{
		Fast:     tiers[2],
		Standard: tiers[1],
		Slow:     tiers[0],
		Source:   Source,
	}, nil
}

func meanReward(rewards [][]*big.Int, idx int) (*big.Int, error) {
	sum := new(big.Int)
	n := 0
	for _, block := range rewards {
		if idx >= len(block) || block[idx] == nil {
			continue
		}
		sum.Add(sum, block[idx])
		n++
	}
	if n == 0 {
		return nil, errors.New("no reward samples")
	}
	return sum.Div(sum, big.NewInt(int64(n))), nil
}

func weiToGwei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -9).Round(2)
}
