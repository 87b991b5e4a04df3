package main

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/feed"
)

// binanceTrade is the payload of one trade event on the combined stream.
type binanceTrade struct {
	Symbol string `json:"s"`
	Price  string `json:"p"`
	TimeMs int64  `json:"T"`
}

// binanceFrame wraps combined-stream events.
type binanceFrame struct {
	Stream string       `json:"stream"`
	Data   binanceTrade `json:"data"`
}

// decodeTrade turns a combined-stream frame into a priceTicked change.
// Frames that are not trade events are skipped.
func decodeTrade(_ int, data []byte) (ravel.Change, error) {
	var frame binanceFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	if frame.Data.Symbol == "" || frame.Data.Price == "" {
		return nil, nil
	}
	price, err := strconv.ParseFloat(frame.Data.Price, 64)
	if err != nil {
		return nil, err
	}
	at := time.Now()
	if frame.Data.TimeMs > 0 {
		at = time.UnixMilli(frame.Data.TimeMs)
	}
	return priceTicked{Symbol: frame.Data.Symbol, Price: price, At: at}, nil
}

// streamURL builds the combined trade-stream URL for the watchlist.
func streamURL(endpoint string, symbols []string) string {
	streams := make([]string, 0, len(symbols))
	for _, s := range symbols {
		streams = append(streams, strings.ToLower(s)+"@trade")
	}
	return strings.TrimRight(endpoint, "/") + "/stream?streams=" + strings.Join(streams, "/")
}

// startFeeds wires the trade websocket and the one-second clock into the
// store. Both stop when ctx is cancelled or the store closes.
func startFeeds(ctx context.Context, endpoint string, symbols []string, store *ravel.Store[board]) error {
	sock, err := feed.NewSocket(feed.SocketConfig{
		URL:    streamURL(endpoint, symbols),
		Decode: decodeTrade,
		OnStatus: func(st feed.Status) {
			_ = store.Submit(feedStatusChanged{Status: st})
		},
	})
	if err != nil {
		return err
	}
	go func() { _ = sock.Run(ctx, store.Submit) }()

	clock := feed.Ticker(ctx, time.Second, func(at time.Time) ravel.Change {
		return clockTicked{At: at}
	})
	go func() { _ = feed.Forward(ctx, clock, store.Submit) }()

	return nil
}
