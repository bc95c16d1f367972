package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	repo ReportRepository
}

func NewReportHandler(repo ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// GetBookingStats godoc
// @Summary      Booking statistics
// @Description  Returns aggregated booking counts grouped by day or by class. Staff only.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        group_by  query     string  false  "Group by dimension (day or class)"
// @Param        from      query     string  true   "Start datetime (RFC3339)"
// @Param        to        query     string  true   "End datetime (RFC3339)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  gin.H
// @Failure      500       {object}  gin.H
// @Router       /staff/reports/bookings [get]
func (h *ReportHandler) GetBookingStats(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from format, use RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to format, use RFC3339"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.repo.GetBookingStatsByDay(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"group_by": "day",
			"from":     from,
			"to":       to,
			"data":     stats,
		})
	case "class":
		stats, err := h.repo.GetBookingStatsByClass(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"group_by": "class",
			"from":     from,
			"to":       to,
			"data":     stats,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'day' or 'class'"})
	}
}
