package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

// LoanRequest names the member and the book of a borrow or return.
type LoanRequest struct {
	MemberID string `json:"member_id" binding:"required"`
	ISBN     string `json:"isbn" binding:"required"`
}

type LoansController struct {
	library *library.Service
	logger  *zap.Logger
}

func NewLoansController(svc *library.Service, logger *zap.Logger) *LoansController {
	return &LoansController{
		library: svc,
		logger:  logger,
	}
}

func (controller *LoansController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/loans", controller.ListOpen)
	api.GET("/loans/overdue", controller.ListOverdue)
	api.POST("/loans/borrow", controller.Borrow)
	api.POST("/loans/return", controller.Return)
}

func (controller *LoansController) ListOpen(c *gin.Context) {
	loans, err := controller.library.ListOpenLoans(c.Request.Context())
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

func (controller *LoansController) ListOverdue(c *gin.Context) {
	loans, err := controller.library.ListOverdue(c.Request.Context())
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

func (controller *LoansController) Borrow(c *gin.Context) {
	var req LoanRequest
	if !bindJSON(c, &req) {
		return
	}

	loan, err := controller.library.Borrow(c.Request.Context(), req.MemberID, req.ISBN)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusCreated, library.StatusBorrowed, loan)
}

func (controller *LoansController) Return(c *gin.Context) {
	var req LoanRequest
	if !bindJSON(c, &req) {
		return
	}

	loan, err := controller.library.Return(c.Request.Context(), req.MemberID, req.ISBN)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusOK, library.StatusReturned, loan)
}
