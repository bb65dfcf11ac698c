// Package main runs the order matching engine as an HTTP-fronted server.
//
// Architecture:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Client    │────▶│     PRE     │────▶│     RC      │────▶│    CORE     │
//	│  (HTTP)     │     │ (dup check) │     │ (pass-thru) │     │ (book+match)│
//	└─────────────┘     └─────────────┘     └─────────────┘     └──────┬──────┘
//	                                                                   │
//	                          ┌──────────────┬─────────────────────────┤
//	                          ▼              ▼                         ▼
//	                   ┌───────────┐  ┌─────────────┐           ┌───────────┐
//	                   │    EXE    │  │ Market Data  │           │ Clearing  │
//	                   │ (records) │  │  Publisher   │           │  House    │
//	                   └─────┬─────┘  └──────────────┘           └───────────┘
//	                         ▼
//	                  ┌────────────┐
//	                  │    Sink    │
//	                  │ (file/ws)  │
//	                  └────────────┘
//
// The engine itself (internal/engine) is transport-agnostic: this binary
// is the one place that owns HTTP, configuration loading, and process
// lifecycle (spec §1, §6 — all out of the engine's own scope).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rishav/order-matching-engine/internal/book"
	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/config"
	"github.com/rishav/order-matching-engine/internal/engine"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/marketdata"
	"github.com/rishav/order-matching-engine/internal/messages"
	"github.com/rishav/order-matching-engine/internal/reports"
	"github.com/rishav/order-matching-engine/internal/riskcheck"
	"github.com/rishav/order-matching-engine/internal/settlement"
	"github.com/rishav/order-matching-engine/internal/sink"
	"github.com/rishav/order-matching-engine/internal/telemetry"
)

// orderIDGen hands out venue-assigned OrderIDs, monotonic per session
// (spec §3). Assigning these is a transport-layer responsibility the
// engine itself never performs — CORE only ever consumes OrderIDs it is
// handed.
type orderIDGen struct {
	mu   sync.Mutex
	next ids.OrderID
}

func (g *orderIDGen) Next() ids.OrderID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = g.next.Inc()
	return g.next
}

// Server wires an Engine to an HTTP front end, a market-data feed, and a
// clearing house, and owns their shared lifecycle.
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	eng    *engine.Engine
	orders orderIDGen
	pub    *marketdata.Publisher
	clear  *settlement.ClearingHouse
	wsSink *sink.WebSocketSink // non-nil only when cfg.Sink.Type == "websocket"

	httpServer    *http.Server
	metricsServer *http.Server
}

func NewServer(cfg *config.Config) (*Server, error) {
	log := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	metrics := telemetry.NewMetrics()

	var out sink.Sink
	var wsSink *sink.WebSocketSink
	switch cfg.Sink.Type {
	case "websocket":
		wsSink = sink.NewWebSocketSink(log)
		out = wsSink
	default:
		fileSink, err := sink.NewFileSink(cfg.Sink.Path)
		if err != nil {
			return nil, fmt.Errorf("server: creating file sink: %w", err)
		}
		out = fileSink
	}

	pub := marketdata.NewPublisher()
	clear := settlement.NewClearingHouse()

	riskCfg := riskcheck.Config{
		MaxOrderQty:    ids.Qty(cfg.Risk.MaxOrderQty),
		MaxOrderValue:  cfg.Risk.MaxOrderValue,
		MaxPositionQty: ids.Qty(cfg.Risk.MaxPositionQty),
	}

	engCfg := engine.DefaultConfig()
	engCfg.QueueCapacity = cfg.QueueCapacity
	engCfg.Risk = riskCfg
	engCfg.Observers = []func(messages.Task){
		pub.Observe,
		settlementObserver(clear),
		metricsObserver(metrics),
	}

	eng := engine.New(engCfg, out)

	s := &Server{
		cfg:    cfg,
		log:    log,
		eng:    eng,
		pub:    pub,
		clear:  clear,
		wsSink: wsSink,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/order", s.handleOrder)
	mux.HandleFunc("/cancel", s.handleCancel)
	mux.HandleFunc("/book", s.handleBook)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/marketdata", marketdata.NewServer(pub, log))
	if wsSink != nil {
		mux.Handle("/stream", wsSink)
	}

	s.httpServer = &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	s.metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux}

	return s, nil
}

// settlementObserver turns every match CORE emits into a settlement-house
// position update. exec_id plays no role in net-position accounting, so
// this runs ahead of EXE's own exec_id assignment — the clearing house
// never needs to wait for the wire-encoded record.
func settlementObserver(clear *settlement.ClearingHouse) func(messages.Task) {
	return func(task messages.Task) {
		m, ok := task.(messages.NewOrderMatched)
		if !ok {
			return
		}
		clear.Record(reports.TradeCaptureReport{
			SecurityID:        m.Order1.SecurityID,
			PBUID:             m.Order1.PBUID,
			CounterpartyPBUID: m.Order2.PBUID,
			LastPx:            m.LastPx,
			LastQty:           m.LastQty,
		})
	}
}

// metricsObserver updates the CORE throughput counters for accepts,
// matches and cancels, and counts the outbound records each CORE task
// becomes at EXE. This hook only sees CORE's output stream; the
// queue-depth and match-latency collectors are not updated anywhere.
func metricsObserver(m *telemetry.Metrics) func(messages.Task) {
	return func(task messages.Task) {
		records := 1.0
		switch task.(type) {
		case messages.NewOrderAccepted:
			m.StageThroughput.WithLabelValues("core_accept").Inc()
		case messages.NewOrderMatched:
			m.StageThroughput.WithLabelValues("core_match").Inc()
			records = 3 // two execution reports plus one trade capture
		case messages.CancelRequestAccepted:
			m.StageThroughput.WithLabelValues("core_cancel").Inc()
		}
		m.RecordsEmitted.Add(records)
	}
}

func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	s.log.Info().Str("addr", addr).Str("metrics_addr", s.cfg.Metrics.Addr).Msg("starting order matching engine")

	go func() {
		if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("metrics server error")
		}
	}()

	return s.httpServer.ListenAndServe()
}

// Shutdown drains the HTTP listeners, then the engine's pipeline — in
// that order, so no request arrives after the pipeline has started
// rejecting work (spec §5: shutdown is complete only once every worker
// has joined).
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.metricsServer.Shutdown(ctx); err != nil {
		return err
	}

	out := s.eng.Close()
	stats, err := out.Close()
	if err != nil {
		return err
	}
	s.log.Info().Int64("records_sent", stats.RecordsSent).Int64("bytes_sent", stats.BytesSent).Msg("engine closed")
	return nil
}

// --- HTTP handlers -----------------------------------------------------

type orderRequest struct {
	PBUID      string `json:"pbu_id"`
	ClOrdID    string `json:"cl_ord_id"`
	SecurityID string `json:"security_id"`
	Side       string `json:"side"` // "buy" or "sell"
	Price      int64  `json:"price"`
	Qty        uint64 `json:"qty"`
}

type orderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	side, err := parseSide(req.Side)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	order := commands.NewOrder{
		OrderID:    s.orders.Next(),
		PBUID:      ids.NewPBUID(req.PBUID),
		ClOrdID:    ids.NewClOrdID(req.ClOrdID),
		SecurityID: ids.NewSecurityID(req.SecurityID),
		Side:       side,
		Price:      ids.Price(req.Price),
		Qty:        ids.Qty(req.Qty),
	}

	s.eng.Process(order)

	writeJSON(w, http.StatusAccepted, orderResponse{
		OrderID: order.OrderID.String(),
		Status:  "submitted",
	})
}

type cancelRequest struct {
	PBUID       string `json:"pbu_id"`
	ClOrdID     string `json:"cl_ord_id"`
	OrigClOrdID string `json:"orig_cl_ord_id"`
	SecurityID  string `json:"security_id"`
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	cancel := commands.CancelRequest{
		OrderID:     s.orders.Next(),
		PBUID:       ids.NewPBUID(req.PBUID),
		ClOrdID:     ids.NewClOrdID(req.ClOrdID),
		OrigClOrdID: ids.NewClOrdID(req.OrigClOrdID),
		SecurityID:  ids.NewSecurityID(req.SecurityID),
	}

	s.eng.Process(cancel)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "symbol required"})
		return
	}

	levels := 10
	if l := r.URL.Query().Get("levels"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			levels = parsed
		}
	}

	bids, asks, ok := s.eng.Depth(ids.NewSecurityID(symbol), levels)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "symbol not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"bids":   depthJSON(bids),
		"asks":   depthJSON(asks),
	})
}

func depthJSON(levels []book.DepthLevel) []map[string]interface{} {
	out := make([]map[string]interface{}, len(levels))
	for i, l := range levels {
		out[i] = map[string]interface{}{
			"price": l.Price.Display(),
			"qty":   l.Qty,
		}
	}
	return out
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbols":   s.eng.Symbols(),
		"positions": s.clear.Positions(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func parseSide(s string) (ids.Side, error) {
	switch s {
	case "buy", "BUY", "B":
		return ids.Buy, nil
	case "sell", "SELL", "S":
		return ids.Sell, nil
	default:
		return 0, fmt.Errorf("invalid side: must be 'buy' or 'sell'")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "", "Path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	server, err := NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		}
	}()

	if err := server.Start(*addr); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
