package evm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// Registry resolves ledgers by symbol for the configured network. It is
// built once at startup.
type Registry struct {
	network string
	ledgers map[string]*Ledger
	heads   HeadSource
}

// NewRegistry creates one ledger per token.
func NewRegistry(network string, tokens []domain.Token, client ContractReader, sender ports.TxSender, cfg LedgerConfig, log zerolog.Logger) (*Registry, error) {
	r := &Registry{network: strings.ToLower(network), ledgers: make(map[string]*Ledger, len(tokens))}
	for _, t := range tokens {
		l, err := NewLedger(t, client, sender, cfg, log)
		if err != nil {
			return nil, err
		}
		r.ledgers[strings.ToUpper(t.Symbol)] = l
	}
	if len(r.ledgers) == 0 {
		return nil, fmt.Errorf("no tokens configured for network %q", network)
	}
	return r, nil
}

// Ledger returns the ledger for symbol.
func (r *Registry) Ledger(symbol string) (ports.TokenLedger, error) {
	l, ok := r.ledgers[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("currency %q not supported on %s", symbol, r.network)
	}
	return l, nil
}

// Symbols lists the supported currencies in sorted order.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.ledgers))
	for s := range r.ledgers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// UseCursors persists each ledger's scan cursor in store, keyed by network
// and symbol.
func (r *Registry) UseCursors(store ports.ScanCursorRepository) {
	for sym, l := range r.ledgers {
		l.UseCursor(store, CursorName(r.network, sym))
	}
}

// FollowHeads makes Run scan on every head announced by src instead of
// polling on each ledger's own ticker.
func (r *Registry) FollowHeads(src HeadSource) {
	r.heads = src
}

// CursorName is the key a ledger's scan cursor is stored under.
func CursorName(network, symbol string) string {
	return strings.ToLower(network) + "/" + strings.ToUpper(symbol)
}

// Run drives every ledger's scan loop and returns when ctx ends. One head
// subscription is fanned out to all ledgers. A ledger still busy scanning
// drops extra notifications; its next scan reads the head itself.
func (r *Registry) Run(ctx context.Context) {
	feeds := make([]chan uint64, 0, len(r.ledgers))

	var wg sync.WaitGroup
	for _, l := range r.ledgers {
		var feed chan uint64
		if r.heads != nil {
			feed = make(chan uint64, 1)
			feeds = append(feeds, feed)
		}
		wg.Add(1)
		go func(l *Ledger, feed chan uint64) {
			defer wg.Done()
			l.Run(ctx, feed)
		}(l, feed)
	}

	if r.heads != nil {
		for head := range r.heads.SubscribeNewBlocks(ctx) {
			for _, feed := range feeds {
				select {
				case feed <- head:
				default:
				}
			}
		}
		for _, feed := range feeds {
			close(feed)
		}
	}
	wg.Wait()
}
