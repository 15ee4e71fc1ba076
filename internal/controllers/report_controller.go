package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/policy"
	"safety_reports/internal/services"
)

type ReportController struct {
	actorLoader
	reports  *services.ReportService
	comments *services.CommentService
}

func NewReportController(users *services.UserService, reports *services.ReportService, comments *services.CommentService) *ReportController {
	return &ReportController{
		actorLoader: actorLoader{users: users},
		reports:     reports,
		comments:    comments,
	}
}

// About describes the service; it needs no data.
func (rc *ReportController) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Safety Reports",
		"description": "Submit, browse and triage safety reports.",
		"statuses":    statusOptions(),
	})
}

// List is the report board: newest first, six per page, optional search.
func (rc *ReportController) List(c *gin.Context) {
	search := c.Query("search")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := rc.reports.List(c.Request.Context(), services.ListQuery{
		Search:   search,
		Page:     page,
		PageSize: services.DefaultPageSize,
	})
	if err != nil {
		respondError(c, "ListReports", err)
		return
	}

	data := make([]ReportResponse, 0, len(result.Items))
	for i := range result.Items {
		data = append(data, toReportResponse(&result.Items[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         data,
		"search_query": search,
		"pagination": PaginationMeta{
			CurrentPage: result.Number,
			PageSize:    result.PageSize,
			TotalItems:  result.TotalItems,
			TotalPages:  result.TotalPages,
			HasNext:     result.HasNext,
			HasPrevious: result.HasPrevious,
		},
	})
}

// Create accepts JSON or a multipart form with an optional "image" file.
func (rc *ReportController) Create(c *gin.Context) {
	actor, err := rc.currentActor(c)
	if err != nil {
		respondError(c, "CreateReport", err)
		return
	}

	var input services.ReportInput
	if err := c.ShouldBind(&input); err != nil {
		logrus.WithError(err).Warn("CreateReport: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		f, err := file.Open()
		if err != nil {
			respondError(c, "CreateReport", err)
			return
		}
		defer f.Close()
		input.Image = &services.ImageUpload{Filename: file.Filename, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no attachment
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload: " + err.Error()})
		return
	}

	report, err := rc.reports.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, "CreateReport", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Safety report created successfully!",
		"report":  toReportResponse(report),
	})
}

// Detail shows one report with its comment thread.
func (rc *ReportController) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	report, err := rc.reports.Get(ctx, id)
	if err != nil {
		respondError(c, "ReportDetail", err)
		return
	}
	actor, err := rc.currentActor(c)
	if err != nil {
		respondError(c, "ReportDetail", err)
		return
	}
	thread, err := rc.comments.ListForReport(ctx, report.ID)
	if err != nil {
		respondError(c, "ReportDetail", err)
		return
	}

	comments := make([]CommentResponse, 0, len(thread))
	for i := range thread {
		comments = append(comments, toCommentResponse(actor, &thread[i]))
	}

	resp := gin.H{
		"report":       toReportResponse(report),
		"comments":     comments,
		"can_comment":  actor != nil,
		"can_moderate": policy.CanModerateInvestigations(actor),
	}
	if policy.CanModerateInvestigations(actor) {
		resp["statuses"] = statusOptions()
	}
	c.JSON(http.StatusOK, resp)
}

// AddComment posts a comment on the report.
func (rc *ReportController) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, err := rc.currentActor(c)
	if err != nil {
		respondError(c, "AddComment", err)
		return
	}

	var body struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := rc.comments.Add(c.Request.Context(), actor, id, body.Content)
	if err != nil {
		respondError(c, "AddComment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": toCommentResponse(actor, comment)})
}
