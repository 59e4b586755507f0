package controllers

import (
	"net/http"

	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
)

func Dashboard(c *gin.Context) {
	uid := c.GetUint("userID")

	data, err := services.GetDashboard(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}
