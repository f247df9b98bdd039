package handler

import (
	"fmt"

	"krypto-backend/internal/domain"
	"krypto-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type multiQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// GetPrice godoc
// @Summary      Get the latest quote for a coin
// @Description  Price, 24h volume and 1h/24h/7d change from CoinMarketCap
// @Tags         market
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.PriceSnapshot}
// @Failure      404  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/price/{symbol} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	snap, err := h.market.GetPrice(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetGlobal godoc
// @Summary      Get global market metrics
// @Description  Total market cap, 24h volume and BTC/ETH dominance
// @Tags         market
// @Produce      json
// @Success      200  {object}  OKResponse{data=domain.GlobalSnapshot}
// @Failure      502  {object}  ErrorResponse
// @Router       /api/global [get]
func (h *Handler) GetGlobal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-global")
	defer span.End()

	snap, err := h.market.GetGlobal(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetOnChain godoc
// @Summary      Get on-chain and supply data for a coin
// @Tags         market
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.OnChainSnapshot}
// @Failure      404  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/onchain/{symbol} [get]
func (h *Handler) GetOnChain(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-onchain")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	snap, err := h.market.GetOnChain(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetDerivatives godoc
// @Summary      Get funding rate and open interest for a coin
// @Tags         market
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.DerivativesSnapshot}
// @Failure      404  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/derivatives/{symbol} [get]
func (h *Handler) GetDerivatives(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-derivatives")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	snap, err := h.market.GetDerivatives(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetSentiment godoc
// @Summary      Get the crypto fear and greed index
// @Tags         market
// @Produce      json
// @Success      200  {object}  OKResponse{data=domain.SentimentSnapshot}
// @Failure      502  {object}  ErrorResponse
// @Router       /api/sentiment [get]
func (h *Handler) GetSentiment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-sentiment")
	defer span.End()

	snap, err := h.market.GetSentiment(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetMacro godoc
// @Summary      Get macro indices
// @Description  DXY, Nasdaq, Gold and VIX. A null index could not be fetched.
// @Tags         market
// @Produce      json
// @Success      200  {object}  OKResponse{data=domain.MacroSnapshot}
// @Failure      502  {object}  ErrorResponse
// @Router       /api/macro [get]
func (h *Handler) GetMacro(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-macro")
	defer span.End()

	snap, err := h.market.GetMacro(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

// GetMulti godoc
// @Summary      Get the top coins by market cap
// @Tags         market
// @Produce      json
// @Param        limit  query  int  false  "Number of coins (1-100)"  default(10)
// @Success      200  {object}  OKResponse{data=[]domain.CoinListing}
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/multi [get]
func (h *Handler) GetMulti(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-multi")
	defer span.End()

	var q multiQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, domain.NewError(domain.KindBadRequest, "",
			fmt.Errorf("limit must be an integer between 1 and %d", service.MaxListingLimit)))
		return
	}
	span.SetAttributes(attribute.Int("limit", q.Limit))

	rows, err := h.market.GetTopCoins(ctx, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rows)
}

// GetDashboard godoc
// @Summary      Get price, global and on-chain data in one call
// @Description  Sections that failed are null and described in errors
// @Tags         composite
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.DashboardView}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/dashboard/{symbol} [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	view, err := h.market.GetDashboard(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// GetExtended godoc
// @Summary      Get every snapshot for a coin in one call
// @Description  Price, global, on-chain, derivatives, sentiment and macro, cached for 60 seconds
// @Tags         composite
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.ExtendedView}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/dashboard/extended/{symbol} [get]
func (h *Handler) GetExtended(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-extended")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	view, err := h.market.GetExtended(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// GetBias godoc
// @Summary      Get the directional market bias for a coin
// @Description  Scores funding, open interest, fear and greed, DXY, VIX and 24h price change into [-5, 5].
// @Description  Missing inputs fall back to neutral values and are listed in fallbacks.
// @Tags         composite
// @Produce      json
// @Param        symbol  path  string  true  "Coin symbol (e.g., BTC, ETH)"
// @Success      200  {object}  OKResponse{data=domain.BiasReport}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/bias/{symbol} [get]
func (h *Handler) GetBias(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-bias")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	report, err := h.market.GetBias(ctx, c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}
