package external

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// defaultSymbols covers the assets the bot is usually run for, so the
// reference assets resolve even when no lookup data can be loaded.
var defaultSymbols = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
}

// SymbolLookup maps ticker symbols to CoinGecko coin ids.
type SymbolLookup struct {
	mu  sync.RWMutex
	ids map[string]string
}

// NewSymbolLookup returns a lookup seeded with the default symbols.
func NewSymbolLookup() *SymbolLookup {
	l := &SymbolLookup{ids: make(map[string]string, len(defaultSymbols))}
	for sym, id := range defaultSymbols {
		l.ids[sym] = id
	}
	return l
}

// ID resolves a symbol, case-insensitively.
func (l *SymbolLookup) ID(symbol string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.ids[strings.ToUpper(symbol)]
	return id, ok
}

// Len reports how many symbols resolve.
func (l *SymbolLookup) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

// Set maps symbol to id, replacing any previous mapping.
func (l *SymbolLookup) Set(symbol, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids[strings.ToUpper(symbol)] = id
}

// Merge adds entries whose symbol is not mapped yet and returns how many
// were added. Existing mappings win, so seeded and file entries are never
// shadowed by a later coin list with clashing symbols.
func (l *SymbolLookup) Merge(entries map[string]string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	added := 0
	for sym, id := range entries {
		sym = strings.ToUpper(sym)
		if _, ok := l.ids[sym]; ok || id == "" {
			continue
		}
		l.ids[sym] = id
		added++
	}
	return added
}

type symbolsFile struct {
	Symbols map[string]string `yaml:"symbols"`
}

// LoadFile reads a YAML document of the form
//
//	symbols:
//	  PEPE: pepe
//
// Entries in the file override the defaults.
func (l *SymbolLookup) LoadFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read symbols file: %w", err)
	}
	var f symbolsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return 0, fmt.Errorf("parse symbols file: %w", err)
	}
	for sym, id := range f.Symbols {
		if id == "" {
			return 0, fmt.Errorf("symbols file: empty id for %q", sym)
		}
		l.Set(sym, id)
	}
	return len(f.Symbols), nil
}
