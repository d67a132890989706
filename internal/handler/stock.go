package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mikehquan19/bettero-app/internal/finance"
	"github.com/mikehquan19/bettero-app/internal/market"
	"github.com/mikehquan19/bettero-app/internal/models"
	"github.com/mikehquan19/bettero-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockHandler serves the user's holdings, their price history, and the
// portfolio valuations written by the refresh job.
type StockHandler struct {
	DB       *gorm.DB
	Provider market.Provider
}

func NewStockHandler(db *gorm.DB, provider market.Provider) *StockHandler {
	return &StockHandler{DB: db, Provider: provider}
}

const backfillTimeout = 15 * time.Second

type createStockReq struct {
	Symbol      string          `json:"symbol" binding:"required,max=10"`
	Corporation string          `json:"corporation" binding:"max=100"`
	Shares      decimal.Decimal `json:"shares" binding:"required"`
}

type updateStockReq struct {
	Shares decimal.Decimal `json:"shares" binding:"required"`
}

func (h *StockHandler) list(c *gin.Context, userID uint) {
	var stocks []models.Stock
	err := h.DB.Where("user_id = ?", userID).Order("symbol ASC").Find(&stocks).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query stocks")
		return
	}
	util.Success(c, util.Response{"stocks": stocks})
}

// ListStocks returns the user's holdings.
func (h *StockHandler) ListStocks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.list(c, user.ID)
}

// CreateStock registers a holding and backfills its daily closes from the
// first day of the previous month through yesterday.
func (h *StockHandler) CreateStock(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "symbol must not be empty")
		return
	}
	if !req.Shares.IsPositive() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "shares must be positive")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Stock{}).
		Where("user_id = ? AND symbol = ?", user.ID, symbol).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query stocks")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "symbol already held")
		return
	}

	today := finance.DateOf(time.Now())
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	end := today.AddDate(0, 0, -1)

	ctx, cancel := context.WithTimeout(c.Request.Context(), backfillTimeout)
	defer cancel()
	bars, err := h.Provider.FetchDailyBars(ctx, symbol, start, end)
	if errors.Is(err, market.ErrSymbolNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "unknown symbol")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch market data")
		return
	}
	if len(bars) == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no market data for symbol")
		return
	}

	last := bars[len(bars)-1]
	stock := models.Stock{
		UserID:          user.ID,
		Symbol:          symbol,
		Corporation:     req.Corporation,
		Shares:          req.Shares,
		CurrentClose:    last.Close,
		Open:            last.Open,
		Low:             last.Low,
		High:            last.High,
		Volume:          last.Volume,
		LastUpdatedDate: last.Date,
	}
	if len(bars) > 1 {
		stock.PreviousClose = bars[len(bars)-2].Close
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}
		prices := make([]models.DateStockPrice, 0, len(bars))
		for _, bar := range bars {
			prices = append(prices, models.DateStockPrice{
				StockID:        stock.ID,
				Date:           bar.Date,
				GivenDateClose: bar.Close,
			})
		}
		return tx.Create(&prices).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create stock")
		return
	}

	h.list(c, user.ID)
}

// getOwnedStock loads a stock by path id and checks ownership. Writes the
// error response itself on failure.
func (h *StockHandler) getOwnedStock(c *gin.Context, userID uint) (*models.Stock, bool) {
	stockID, err := strconv.Atoi(c.Param("id"))
	if err != nil || stockID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid stock id")
		return nil, false
	}

	var stock models.Stock
	err = h.DB.Where("id = ? AND user_id = ?", stockID, userID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "stock not found")
		return nil, false
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query stock")
		return nil, false
	}
	return &stock, true
}

// StockPrices returns one holding with its stored daily closes in date order.
func (h *StockHandler) StockPrices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stock, ok := h.getOwnedStock(c, user.ID)
	if !ok {
		return
	}

	var prices []models.DateStockPrice
	err := h.DB.Where("stock_id = ?", stock.ID).Order("date ASC").Find(&prices).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query prices")
		return
	}
	util.Success(c, util.Response{"stock": stock, "prices": prices})
}

// UpdateStock changes the share count of a holding.
func (h *StockHandler) UpdateStock(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stock, ok := h.getOwnedStock(c, user.ID)
	if !ok {
		return
	}

	var req updateStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if !req.Shares.IsPositive() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "shares must be positive")
		return
	}

	if err := h.DB.Model(stock).UpdateColumn("shares", req.Shares).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update stock")
		return
	}
	h.list(c, user.ID)
}

// DeleteStock removes a holding and its price history.
func (h *StockHandler) DeleteStock(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stock, ok := h.getOwnedStock(c, user.ID)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_id = ?", stock.ID).Delete(&models.DateStockPrice{}).Error; err != nil {
			return err
		}
		return tx.Delete(stock).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete stock")
		return
	}
	h.list(c, user.ID)
}

// PortfolioValues returns the user's dated portfolio valuations.
func (h *StockHandler) PortfolioValues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var values []models.PortfolioValue
	err := h.DB.Where("user_id = ?", user.ID).Order("date ASC").Find(&values).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query portfolio values")
		return
	}
	util.Success(c, util.Response{"portfolio_values": values})
}
