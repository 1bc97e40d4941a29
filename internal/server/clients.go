package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Payments Request API is running",
	})
}

type clientSummary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// demoClients is the static list served until client storage exists.
var demoClients = []clientSummary{
	{Name: "John Smith", Phone: "0412 345 678", Email: "john@example.com"},
	{Name: "Sarah Johnson", Phone: "0423 456 789", Email: "sarah@example.com"},
	{Name: "Mike Wilson", Phone: "0434 567 890", Email: "mike@example.com"},
}

func (s *Server) ListClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    demoClients,
	})
}

type addClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (s *Server) AddClient(c *gin.Context) {
	var req addClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: name, phone, and email are required")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields: name, phone, and email are required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Client added successfully",
		"data":    clientSummary{Name: req.Name, Phone: req.Phone, Email: req.Email},
	})
}
