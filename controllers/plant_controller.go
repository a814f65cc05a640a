package controllers

import (
	"net/http"

	"plantchatapi/utils"

	"github.com/gin-gonic/gin"
)

// listPlants returns the registered plant keys with their reachability
// @Summary List plants
// @Description Returns the set of plant keys currently registered, each with its reachability
// @Tags Plants
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/plants [get]
func listPlants(c *gin.Context) {
	statuses := healthSrv.Plants(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Plants fetched successfully", gin.H{
		"plants": statuses,
	})
}

// RegisterPlantRoutes registers the plants listing endpoint.
func RegisterPlantRoutes(rg *gin.RouterGroup) {
	rg.GET("/plants", listPlants)
}
