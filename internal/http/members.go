package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

type MembersController struct {
	library *library.Service
	logger  *zap.Logger
}

func NewMembersController(svc *library.Service, logger *zap.Logger) *MembersController {
	return &MembersController{
		library: svc,
		logger:  logger,
	}
}

func (controller *MembersController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/members", controller.ListMembers)
	api.POST("/members", controller.AddMember)
	api.GET("/members/:id", controller.GetMember)
	api.GET("/members/:id/loans", controller.ListLoans)
	api.GET("/members/:id/notices", controller.ListNotices)
}

func (controller *MembersController) ListMembers(c *gin.Context) {
	members, err := controller.library.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

func (controller *MembersController) AddMember(c *gin.Context) {
	var req library.NewMember
	if !bindJSON(c, &req) {
		return
	}

	member, err := controller.library.AddMember(c.Request.Context(), req)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusCreated, library.StatusMemberAdded, member)
}

func (controller *MembersController) GetMember(c *gin.Context) {
	member, err := controller.library.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, member)
}

func (controller *MembersController) ListLoans(c *gin.Context) {
	loans, err := controller.library.ListMemberLoans(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

func (controller *MembersController) ListNotices(c *gin.Context) {
	notices, err := controller.library.ListMemberNotices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"notices": notices, "count": len(notices)})
}
