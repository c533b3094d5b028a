package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	xlogger "TermPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

type lastPrice struct {
	price float64
	at    time.Time
}

// Finnhub maintains a last-price table fed by the Finnhub trade WebSocket.
// Prices older than maxAge are treated as absent so a stalled feed cannot
// serve stale quotes.
type Finnhub struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	maxAge         time.Duration
	logger         *xlogger.Logger

	mu     sync.RWMutex
	prices map[string]lastPrice
	conn   *websocket.Conn
}

// NewFinnhub creates a Finnhub live price stream.
func NewFinnhub(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval, maxAge time.Duration, logger *xlogger.Logger) *Finnhub {
	return &Finnhub{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		maxAge:         maxAge,
		logger:         logger,
		prices:         make(map[string]lastPrice),
	}
}

// LastPrice returns the most recent streamed price for ticker, if fresh.
func (f *Finnhub) LastPrice(ticker string) (float64, bool) {
	f.mu.RLock()
	lp, ok := f.prices[ticker]
	f.mu.RUnlock()
	if !ok || time.Since(lp.at) > f.maxAge {
		return 0, false
	}
	return lp.price, true
}

type fhTrade struct {
	S string  `json:"s"`
	P float64 `json:"p"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type fhMessage struct {
	Type string    `json:"type"`
	Data []fhTrade `json:"data"`
}

// Run connects, subscribes and consumes trades until ctx is cancelled,
// reconnecting with a fixed delay on failure.
func (f *Finnhub) Run(ctx context.Context) {
	for {
		if err := f.connectAndConsume(ctx); err != nil {
			f.logger.Warn("finnhub stream error", xlogger.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(f.reconnectDelay):
		}
	}
}

func (f *Finnhub) connectAndConsume(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", f.websocketURL, f.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("finnhub connect: %w", err)
	}
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()
	defer conn.Close()

	f.logger.Info("finnhub: connected", xlogger.Strings("symbols", f.symbols))

	for _, s := range f.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
	}

	// ping loop
	pingCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		ticker := time.NewTicker(f.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_, b, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("finnhub read: %w", err)
		}

		var m fhMessage
		if err := json.Unmarshal(b, &m); err != nil {
			// ignore non-trade frames
			continue
		}
		if m.Type != "trade" {
			continue
		}

		f.mu.Lock()
		for _, d := range m.Data {
			f.prices[d.S] = lastPrice{price: d.P, at: time.Now()}
		}
		f.mu.Unlock()
	}
}

// Close closes the active connection, if any.
func (f *Finnhub) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
