package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/policy"
	"safety_reports/internal/services"
)

type InvestigationController struct {
	actorLoader
	reports *services.ReportService
	stats   *services.StatsService
}

func NewInvestigationController(users *services.UserService, reports *services.ReportService, stats *services.StatsService) *InvestigationController {
	return &InvestigationController{
		actorLoader: actorLoader{users: users},
		reports:     reports,
		stats:       stats,
	}
}

// Dashboard is the full investigations page payload.
func (ic *InvestigationController) Dashboard(c *gin.Context) {
	stats, err := ic.stats.InvestigationStats(c.Request.Context())
	if err != nil {
		respondError(c, "InvestigationsDashboard", err)
		return
	}
	actor, err := ic.currentActor(c)
	if err != nil {
		respondError(c, "InvestigationsDashboard", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_data":        stats.StatusData,
		"status_percentages": stats.StatusPercentages,
		"total_reports":      stats.TotalReports,
		"statuses":           statusOptions(),
		"can_moderate":       policy.CanModerateInvestigations(actor),
	})
}

// Stats is the lightweight poll used to refresh the dashboard.
func (ic *InvestigationController) Stats(c *gin.Context) {
	stats, err := ic.stats.InvestigationStats(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("InvestigationStats: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateStatus changes a report's investigation status. Unexpected failures
// are reported to the caller with their message and a 500.
func (ic *InvestigationController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, err := ic.currentActor(c)
	if err != nil {
		respondError(c, "UpdateInvestigationStatus", err)
		return
	}

	var body struct {
		Status string `json:"status" form:"status"`
	}
	// An unreadable body is an empty status; the service still checks
	// permission before it looks at the value.
	if err := c.ShouldBind(&body); err != nil {
		body.Status = ""
	}

	change, err := ic.reports.UpdateInvestigationStatus(c.Request.Context(), actor, id, body.Status)
	if err != nil {
		respondError(c, "UpdateInvestigationStatus", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"report_id": change.ReportID,
		"from":      change.OldStatus,
		"to":        change.NewStatus,
		"actor_id":  actor.ID,
	}).Info("investigation status updated")

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Status updated from %q to %q", change.OldLabel, change.NewLabel),
		"new_status":   change.NewLabel,
		"status_color": change.Color,
		"status_icon":  change.Icon,
	})
}
