package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response wraps every successful result.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

func ok(c *gin.Context, result interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Result: result})
}
