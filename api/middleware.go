package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const ownerKey = "aiworkflow.owner"

// withOwner stores the placeholder owner. Every request acts as the same
// configured user until authentication exists.
func (h *Handler) withOwner(c *gin.Context) {
	c.Set(ownerKey, h.app.DefaultOwner)
	c.Next()
}

func owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}

func (h *Handler) notInProduction(c *gin.Context) {
	if h.app.IsProduction() {
		h.fail(c, newForbidden("This endpoint is not available in production"))
		return
	}
	c.Next()
}

// timingWriter sets X-Process-Time right before the status line goes out.
type timingWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true
	elapsed := time.Since(w.start).Seconds()
	w.Header().Set("X-Process-Time", strconv.FormatFloat(elapsed, 'f', 6, 64))
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timingWriter) Write(data []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(data)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

// requestLog logs one line per request and reports the handling time in X-Process-Time.
func (h *Handler) requestLog(c *gin.Context) {
	start := time.Now()
	c.Writer = &timingWriter{ResponseWriter: c.Writer, start: start}

	c.Next()

	elapsed := time.Since(start)
	h.log.WithFields(logrus.Fields{
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"status_code":  c.Writer.Status(),
		"process_time": elapsed.Seconds(),
		"user_agent":   c.Request.UserAgent(),
		"client_ip":    c.ClientIP(),
	}).Infof("%s %s - Status: %d - Time: %.4fs", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), elapsed.Seconds())
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-XSS-Protection", "1; mode=block")
		header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func (h *Handler) recovered(c *gin.Context, err any) {
	h.log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"panic":  err,
	}).Error("recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
	})
}
