package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/geo"
	"safety_reports/internal/middleware"
	"safety_reports/internal/models"
	"safety_reports/internal/policy"
	"safety_reports/internal/services"
	"safety_reports/internal/status"
)

// ReportResponse is the API view of a SafetyReport with its status badge
// resolved and the location rendered as GeoJSON.
type ReportResponse struct {
	ID                  uint      `json:"id"`
	AuthorID            uint      `json:"author_id"`
	Author              string    `json:"author"`
	Place               string    `json:"place"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Description         string    `json:"description"`
	InvestigationStatus string    `json:"investigation_status"`
	StatusLabel         string    `json:"status_label"`
	StatusColor         string    `json:"status_color"`
	StatusIcon          string    `json:"status_icon"`
	ImageURL            string    `json:"image_url,omitempty"`
	Location            string    `json:"location,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	ReportID  uint      `json:"report_id"`
	AuthorID  uint      `json:"author_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CanEdit   bool      `json:"can_edit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	RoleLabel string    `json:"role_label"`
	CreatedAt time.Time `json:"created_at"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// StatusOption is one row of the status table offered to moderators.
type StatusOption struct {
	Code string `json:"code"`
	status.Presentation
}

func toReportResponse(r *models.SafetyReport) ReportResponse {
	p := r.StatusPresentation()
	location, err := geo.ToGeoJSON(r.Location)
	if err != nil {
		logrus.WithError(err).WithField("report_id", r.ID).Warn("stored location is not valid WKB")
	}
	author := ""
	if r.Author != nil {
		author = r.Author.Username
	}
	return ReportResponse{
		ID:                  r.ID,
		AuthorID:            r.AuthorID,
		Author:              author,
		Place:               r.Place,
		Date:                r.Date.Format(models.DateLayout),
		Time:                r.Time,
		Description:         r.Description,
		InvestigationStatus: r.InvestigationStatus,
		StatusLabel:         p.Label,
		StatusColor:         p.Color,
		StatusIcon:          p.Icon,
		ImageURL:            r.ImageURL,
		Location:            location,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func toCommentResponse(actor *models.User, cm *models.Comment) CommentResponse {
	author := ""
	if cm.Author != nil {
		author = cm.Author.Username
	}
	return CommentResponse{
		ID:        cm.ID,
		ReportID:  cm.ReportID,
		AuthorID:  cm.AuthorID,
		Author:    author,
		Content:   cm.Content,
		CanEdit:   policy.CanMutateComment(actor, cm),
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func toUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.Profile != nil {
		resp.Role = u.Profile.Role
		resp.RoleLabel = u.Profile.RoleLabel()
	}
	return resp
}

func statusOptions() []StatusOption {
	all := status.All()
	out := make([]StatusOption, 0, len(all))
	for _, s := range all {
		out = append(out, StatusOption{Code: string(s), Presentation: status.Describe(string(s))})
	}
	return out
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, op string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please correct the errors below.", "fields": verr.Fields})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already in use"})
	default:
		logrus.WithError(err).Error(op + ": unexpected failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// actorLoader resolves the request's user, with profile, from the token
// claims. Anonymous requests and tokens for deleted users yield nil.
type actorLoader struct {
	users *services.UserService
}

func (l actorLoader) currentActor(c *gin.Context) (*models.User, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil, nil
	}
	actor, err := l.users.FindActor(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	return actor, err
}
