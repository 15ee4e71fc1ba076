package routes

import (
	"io"
	"strings"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/metrics"
	"safety_reports/internal/middleware"
	"safety_reports/internal/services"
)

// Deps is everything the router needs to build its controllers.
type Deps struct {
	Auth     *middleware.Auth
	Users    *services.UserService
	Reports  *services.ReportService
	Comments *services.CommentService
	Stats    *services.StatsService

	// AccessLog receives the request log. Nil disables it.
	AccessLog io.Writer
	// MediaDir and MediaURL serve locally stored images. Empty MediaDir
	// means images live elsewhere (S3/R2).
	MediaDir string
	MediaURL string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.AccessLog != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithWriter(d.AccessLog),
			ginlog.WithSkipPath([]string{"/metrics"}),
		))
	}
	r.Use(middleware.RequestMetrics())

	reports := controllers.NewReportController(d.Users, d.Reports, d.Comments)

	AuthRoutes(r, controllers.NewAuthController(d.Users, d.Auth), d.Auth)
	ReportRoutes(r, reports, d.Auth)
	CommentRoutes(r, controllers.NewCommentController(d.Users, d.Comments), d.Auth)
	InvestigationRoutes(r, controllers.NewInvestigationController(d.Users, d.Reports, d.Stats), d.Auth)
	AdminRoutes(r, controllers.NewAdminController(d.Users), d.Auth)

	r.GET("/about", reports.About)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if d.MediaDir != "" && strings.HasPrefix(d.MediaURL, "/") {
		r.Static(d.MediaURL, d.MediaDir)
	}

	return r
}
