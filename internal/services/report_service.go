package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"safety_reports/internal/geo"
	"safety_reports/internal/metrics"
	"safety_reports/internal/models"
	"safety_reports/internal/policy"
	"safety_reports/internal/status"
	"safety_reports/internal/storage"
)

// DefaultPageSize is the number of reports on one board page.
const DefaultPageSize = 6

// ReportInput is the submitted report form. Date and Time arrive as text and
// are parsed during validation.
type ReportInput struct {
	Place       string `json:"place" form:"place" validate:"required,max=200"`
	Date        string `json:"date" form:"date" validate:"required"`
	Time        string `json:"time" form:"time" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Location    string `json:"location" form:"location"` // optional GeoJSON Point

	Image *ImageUpload `json:"-" form:"-"`
}

// ImageUpload is an optional attachment read from the request.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ListQuery selects one page of the report board.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// Page is one clamped page of reports, newest first.
type Page struct {
	Items       []models.SafetyReport
	Number      int
	PageSize    int
	TotalItems  int64
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// StatusChange describes a completed investigation status update.
type StatusChange struct {
	ReportID  uint
	OldStatus string
	NewStatus string
	OldLabel  string
	NewLabel  string
	Color     string
	Icon      string
}

// ReportService creates, lists and triages safety reports.
type ReportService struct {
	db            *gorm.DB
	images        storage.Store
	stats         StatsInvalidator
	maxImageBytes int64
	now           func() time.Time
}

func NewReportService(db *gorm.DB, images storage.Store, stats StatsInvalidator, maxImageBytes int64) *ReportService {
	return &ReportService{
		db:            db,
		images:        images,
		stats:         stats,
		maxImageBytes: maxImageBytes,
		now:           time.Now,
	}
}

// Create validates the whole input first and only then writes. An uploaded
// image is removed again if the row cannot be stored.
func (s *ReportService) Create(ctx context.Context, actor *models.User, in ReportInput) (*models.SafetyReport, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	in.Place = strings.TrimSpace(in.Place)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	verr := &ValidationError{}
	if err := structErrors(in, verr); err != nil {
		return nil, err
	}

	report := models.SafetyReport{
		AuthorID:            actor.ID,
		Place:               in.Place,
		Description:         in.Description,
		InvestigationStatus: string(status.Waiting),
	}

	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			verr.add("date", "Enter a valid date.")
		}
		report.Date = d
	}
	if in.Time != "" {
		t, err := parseTimeOfDay(in.Time)
		if err != nil {
			verr.add("time", "Enter a valid time.")
		}
		report.Time = t
	}
	if in.Location != "" {
		loc, err := geo.ParsePoint(in.Location)
		if err != nil {
			verr.add("location", err.Error())
		}
		report.Location = loc
	}

	var image []byte
	var imageType string
	if in.Image != nil {
		var msg string
		image, imageType, msg = s.readImage(in.Image)
		if msg != "" {
			verr.add("image", msg)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if image != nil {
		if s.images == nil {
			return nil, fmt.Errorf("image storage is not configured")
		}
		key := storage.NewKey(imageType, s.now())
		url, err := s.images.Put(ctx, key, imageType, bytes.NewReader(image))
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		report.ImageKey = key
		report.ImageURL = url
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		if report.ImageKey != "" {
			if derr := s.images.Delete(ctx, report.ImageKey); derr != nil {
				logrus.WithError(derr).WithField("key", report.ImageKey).Warn("CreateReport: orphaned image left in storage")
			}
		}
		return nil, err
	}

	report.Author = actor
	metrics.ReportsCreated.Inc()
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	return &report, nil
}

// readImage returns the image bytes and sniffed content type, or a
// user-facing message explaining why the upload was refused.
func (s *ReportService) readImage(up *ImageUpload) ([]byte, string, string) {
	limit := s.maxImageBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(up.Body, limit+1))
	if err != nil {
		return nil, "", "The submitted file could not be read."
	}
	if len(data) == 0 {
		return nil, "", "The submitted file is empty."
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Sprintf("Ensure the image is at most %d bytes.", limit)
	}
	mt := mimetype.Detect(data)
	if !allowedImageTypes[mt.String()] {
		return nil, "", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}
	return data, mt.String(), ""
}

// Get loads one report with its author.
func (s *ReportService) Get(ctx context.Context, id uint) (*models.SafetyReport, error) {
	var report models.SafetyReport
	if err := s.db.WithContext(ctx).Preload("Author").First(&report, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &report, nil
}

// List returns one page of reports, newest first, optionally filtered by a
// case-insensitive substring of place or description. Out-of-range pages are
// clamped to the first or last page.
func (s *ReportService) List(ctx context.Context, q ListQuery) (*Page, error) {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	filtered := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.SafetyReport{})
		if search := strings.TrimSpace(q.Search); search != "" {
			pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
			query = query.Where(
				"LOWER(place) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'",
				pattern, pattern,
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	number := q.Page
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	var items []models.SafetyReport
	err := filtered().
		Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Offset((number - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:       items,
		Number:      number,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  pages,
		HasPrevious: number > 1,
		HasNext:     number < pages,
	}, nil
}

// UpdateInvestigationStatus moves a report to newStatus. Any status may move
// to any other; setting the current status again is persisted as well.
func (s *ReportService) UpdateInvestigationStatus(ctx context.Context, actor *models.User, reportID uint, newStatus string) (*StatusChange, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !policy.CanModerateInvestigations(actor) {
		return nil, ErrPermissionDenied
	}

	var report models.SafetyReport
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	next, err := status.Parse(newStatus)
	if err != nil {
		return nil, err
	}

	old := report.InvestigationStatus
	err = s.db.WithContext(ctx).Model(&report).
		Updates(map[string]interface{}{
			"investigation_status": string(next),
			"updated_at":           s.now(),
		}).Error
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(old, string(next)).Inc()
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}

	p := status.Describe(string(next))
	return &StatusChange{
		ReportID:  report.ID,
		OldStatus: old,
		NewStatus: string(next),
		OldLabel:  status.Label(old),
		NewLabel:  p.Label,
		Color:     p.Color,
		Icon:      p.Icon,
	}, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
