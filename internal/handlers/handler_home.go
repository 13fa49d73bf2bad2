package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}

// getHome godoc
// @Summary Show the service banner.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Exchange rates service", "endpoints": []string{"/download", "/presentData"}})
}

// registerHomeRoutes registers the root and health routes.
func registerHomeRoutes(r gin.IRouter) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
