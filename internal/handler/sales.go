package handler

import (
	"net/http"

	"github.com/IAmPiHi/StockSystem/internal/apierror"
	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Sell godoc
// @Summary Record a sale and decrement stock
// @Tags sales
// @Accept json
// @Produce json
// @Param body body dto.SellRequest true "Sale"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError "insufficient stock"
// @Router /v1/sales [post]
func (h *SalesHandler) Sell(c *gin.Context) {
	var req dto.SellRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product_id"))
		return
	}
	resp, err := h.svc.Sell(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) Recent(c *gin.Context) {
	resp, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
