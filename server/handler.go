// Package server exposes a graphz engine over HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const basePath = "/api/v1"

var errMissingSymbol = errors.New("symbol is required")

// Handler serves the engine snapshots and accepts trades.
type Handler struct {
	router   *gin.Engine
	engine   *graphz.Engine
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns the HTTP handler of engine.
func NewHandler(engine *graphz.Engine, logger *logrus.Logger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	h := &Handler{
		router: router,
		engine: engine,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	api := h.router.Group(basePath)
	{
		api.GET("/snapshot", h.getSnapshot)
		api.GET("/instruments", h.getInstruments)
		api.GET("/instruments/:symbol", h.getInstrument)
		api.GET("/portfolio", h.getPortfolio)
		api.GET("/transactions", h.getTransactions)

		api.POST("/select", h.selectInstrument)
		api.POST("/buy", h.trade(graphz.TxBuy))
		api.POST("/sell", h.trade(graphz.TxSell))

		api.GET("/stream", h.stream)
	}
}

type symbolPayload struct {
	Symbol string `json:"symbol"`
}

type tradePayload struct {
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
}

// portfolio is the portfolio panel: the snapshot without the market.
type portfolio struct {
	Cash                   graphz.Money     `json:"cash"`
	Holdings               []graphz.Holding `json:"holdings"`
	InitialCash            graphz.Money     `json:"initialCash"`
	PortfolioValue         graphz.Money     `json:"portfolioValue"`
	TotalValue             graphz.Money     `json:"totalValue"`
	TotalProfitLoss        graphz.Money     `json:"totalProfitLoss"`
	TotalProfitLossPercent graphz.Percent   `json:"totalProfitLossPercent"`
}

func (h *Handler) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Snapshot())
}

// getInstruments lists every instrument. ?candles=N keeps only the last N
// candles of each history, ?candles=0 drops them.
func (h *Handler) getInstruments(c *gin.Context) {
	instruments := h.engine.Snapshot().Instruments
	if raw, ok := c.GetQuery("candles"); ok {
		n, err := parseCandles(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
		for i := range instruments {
			instruments[i].History = lastCandles(instruments[i], n)
		}
	}
	c.JSON(http.StatusOK, instruments)
}

func (h *Handler) getInstrument(c *gin.Context) {
	symbol := c.Param("symbol")
	in, ok := h.engine.Snapshot().Instrument(symbol)
	if !ok {
		writeError(c, http.StatusNotFound, fmt.Errorf("%w %q", graphz.ErrUnknownInstrument, symbol))
		return
	}
	if raw, ok := c.GetQuery("candles"); ok {
		n, err := parseCandles(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
		in.History = lastCandles(in, n)
	}
	c.JSON(http.StatusOK, in)
}

func (h *Handler) getPortfolio(c *gin.Context) {
	s := h.engine.Snapshot()
	c.JSON(http.StatusOK, portfolio{
		Cash:                   s.Cash,
		Holdings:               s.Holdings,
		InitialCash:            s.InitialCash,
		PortfolioValue:         s.PortfolioValue,
		TotalValue:             s.TotalValue,
		TotalProfitLoss:        s.TotalProfitLoss,
		TotalProfitLossPercent: s.TotalProfitLossPercent,
	})
}

func (h *Handler) getTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Snapshot().Transactions)
}

func (h *Handler) selectInstrument(c *gin.Context) {
	var payload symbolPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	if !h.engine.SelectInstrument(payload.Symbol) {
		writeError(c, http.StatusNotFound, fmt.Errorf("%w %q", graphz.ErrUnknownInstrument, payload.Symbol))
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": payload.Symbol})
}

func (h *Handler) trade(typ graphz.TransactionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload tradePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
		if payload.Symbol == "" {
			writeError(c, http.StatusBadRequest, errMissingSymbol)
			return
		}
		tx, err := h.engine.Trade(typ, payload.Symbol, payload.Quantity)
		if err != nil {
			writeError(c, tradeStatus(err), err)
			return
		}
		c.JSON(http.StatusOK, tx)
	}
}

// tradeStatus maps executor errors to HTTP status codes.
func tradeStatus(err error) int {
	switch {
	case errors.Is(err, graphz.ErrInsufficientFunds), errors.Is(err, graphz.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, graphz.ErrUnknownInstrument):
		return http.StatusNotFound
	case errors.Is(err, graphz.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseCandles(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("candles must be a non negative integer, got %q", raw)
	}
	return n, nil
}

func lastCandles(in graphz.Instrument, n int) []graphz.Candle {
	if n == 0 {
		return []graphz.Candle{}
	}
	return in.Last(n)
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requestLogger logs every request at debug level, and server errors at error level.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request")
	}
}
