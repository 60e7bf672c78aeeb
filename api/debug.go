package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTables(c *gin.Context) {
	tables, err := h.schema.CreateTables(c.Request.Context())
	if err != nil {
		h.fail(c, fmt.Errorf("failed to create tables: %w", err))
		return
	}
	h.log.WithField("tables", tables).Info("created tables")
	c.JSON(http.StatusOK, gin.H{
		"message": "All tables created successfully",
		"tables":  tables,
		"count":   len(tables),
	})
}

func (h *Handler) DropTables(c *gin.Context) {
	tables, err := h.schema.DropTables(c.Request.Context())
	if err != nil {
		h.fail(c, fmt.Errorf("failed to drop tables: %w", err))
		return
	}
	h.log.WithField("tables", tables).Warn("dropped tables")
	c.JSON(http.StatusOK, gin.H{
		"message": "All tables dropped successfully",
		"tables":  tables,
		"count":   len(tables),
		"warning": "All data has been permanently deleted!",
	})
}

func (h *Handler) TableInfo(c *gin.Context) {
	tables, err := h.schema.DescribeTables(c.Request.Context())
	if err != nil {
		h.fail(c, fmt.Errorf("failed to get table info: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Table information retrieved successfully",
		"tables":      tables,
		"table_count": len(tables),
	})
}

func (h *Handler) DatabaseHealthCheck(c *gin.Context) {
	if err := h.schema.Ping(c.Request.Context()); err != nil {
		h.fail(c, fmt.Errorf("health check failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Database connection successful",
		"database_test": 1,
		"environment":   h.app.Environment,
		"debug_mode":    h.app.Debug,
	})
}
