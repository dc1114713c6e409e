package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

type CreateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type JoinClubRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

type ClubsController struct {
	library *library.Service
	logger  *zap.Logger
}

func NewClubsController(svc *library.Service, logger *zap.Logger) *ClubsController {
	return &ClubsController{
		library: svc,
		logger:  logger,
	}
}

func (controller *ClubsController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/clubs", controller.ListClubs)
	api.POST("/clubs", controller.CreateClub)
	api.GET("/clubs/:id", controller.GetClub)
	api.GET("/clubs/:id/members", controller.ListMembers)
	api.POST("/clubs/:id/members", controller.Join)
}

func (controller *ClubsController) ListClubs(c *gin.Context) {
	clubs, err := controller.library.ListClubs(c.Request.Context())
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"clubs": clubs, "count": len(clubs)})
}

func (controller *ClubsController) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if !bindJSON(c, &req) {
		return
	}

	club, err := controller.library.CreateClub(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusCreated, library.StatusClubCreated, club)
}

func (controller *ClubsController) GetClub(c *gin.Context) {
	clubID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	club, err := controller.library.GetClub(c.Request.Context(), clubID)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, club)
}

func (controller *ClubsController) ListMembers(c *gin.Context) {
	clubID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := controller.library.ListClubMembers(c.Request.Context(), clubID)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}

func (controller *ClubsController) Join(c *gin.Context) {
	clubID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req JoinClubRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := controller.library.JoinClub(c.Request.Context(), req.MemberID, clubID); err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusCreated, library.StatusJoinedClub, nil)
}
