package v1

import (
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/validators"
)

// ShowRequest is the body of POST/PUT /shows
type ShowRequest struct {
	Year         int    `json:"year"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Synopsis     string `json:"synopsis"`
	Venue        string `json:"venue"`
	PremiereDate string `json:"premiere_date" validate:"omitempty,datetime=2006-01-02"`
	Director     string `json:"director"`
	IsPublic     bool   `json:"is_public"`
}

// Validate for validating ShowRequest struct
func (r *ShowRequest) Validate() error {
	return validators.Struct(r)
}

func (r *ShowRequest) toDomain() *shows.ShowInput {
	in := &shows.ShowInput{
		Year:     r.Year,
		Title:    r.Title,
		Subtitle: r.Subtitle,
		Synopsis: r.Synopsis,
		Venue:    r.Venue,
		Director: r.Director,
		IsPublic: r.IsPublic,
	}
	if d, err := time.Parse(time.DateOnly, r.PremiereDate); err == nil {
		in.PremiereDate = &d
	}
	return in
}

// ShowResponse is a production
type ShowResponse struct {
	ID           string    `json:"id"`
	Year         int       `json:"year"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Synopsis     string    `json:"synopsis,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	PremiereDate string    `json:"premiere_date,omitempty"`
	Director     string    `json:"director,omitempty"`
	IsPublic     bool      `json:"is_public"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toShowResponse(s *shows.Show) ShowResponse {
	out := ShowResponse{
		ID:        s.ID,
		Year:      s.Year,
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		Synopsis:  s.Synopsis,
		Venue:     s.Venue,
		Director:  s.Director,
		IsPublic:  s.IsPublic,
		UpdatedAt: s.UpdatedAt,
	}
	if s.PremiereDate != nil {
		out.PremiereDate = formatDate(*s.PremiereDate)
	}
	return out
}

// GalleryImageResponse is the management view of a gallery image
type GalleryImageResponse struct {
	ID            string    `json:"id"`
	ShowID        string    `json:"show_id"`
	ContentType   string    `json:"content_type"`
	Caption       string    `json:"caption,omitempty"`
	SortOrder     int       `json:"sort_order"`
	TaggedUserIDs []string  `json:"tagged_user_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

func toGalleryImageResponse(img *shows.GalleryImage) GalleryImageResponse {
	tagged := img.TaggedUserIDs
	if tagged == nil {
		tagged = []string{}
	}
	return GalleryImageResponse{
		ID:            img.ID,
		ShowID:        img.ShowID,
		ContentType:   img.ContentType,
		Caption:       img.Caption,
		SortOrder:     img.SortOrder,
		TaggedUserIDs: tagged,
		CreatedAt:     img.CreatedAt,
	}
}

// PublicImageURL is where the Chronik serves an image
func PublicImageURL(id string) string {
	return BasePath + "/chronik/images/" + id
}

// PublicImageResponse is a gallery image as the public sees it
type PublicImageResponse struct {
	ID      string `json:"id"`
	Caption string `json:"caption,omitempty"`
	URL     string `json:"url"`
}

// ChronikShowResponse is one public show in the Chronik
type ChronikShowResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Subtitle     string                `json:"subtitle,omitempty"`
	Venue        string                `json:"venue,omitempty"`
	PremiereDate string                `json:"premiere_date,omitempty"`
	Director     string                `json:"director,omitempty"`
	SynopsisHTML string                `json:"synopsis_html"`
	Images       []PublicImageResponse `json:"images"`
}

// ChronikYearResponse groups the public shows of a season
type ChronikYearResponse struct {
	Year  int                   `json:"year"`
	Shows []ChronikShowResponse `json:"shows"`
}

func toChronikYearResponse(y *shows.ChronikYear) ChronikYearResponse {
	out := ChronikYearResponse{Year: y.Year, Shows: make([]ChronikShowResponse, len(y.Shows))}
	for i, entry := range y.Shows {
		show := toShowResponse(entry.Show)
		images := make([]PublicImageResponse, len(entry.Images))
		for j, img := range entry.Images {
			images[j] = PublicImageResponse{ID: img.ID, Caption: img.Caption, URL: PublicImageURL(img.ID)}
		}
		out.Shows[i] = ChronikShowResponse{
			ID:           show.ID,
			Title:        show.Title,
			Subtitle:     show.Subtitle,
			Venue:        show.Venue,
			PremiereDate: show.PremiereDate,
			Director:     show.Director,
			SynopsisHTML: string(entry.SynopsisHTML),
			Images:       images,
		}
	}
	return out
}

// TemplateRequest is the body of POST/PUT /rehearsal-templates
type TemplateRequest struct {
	ShowID          *string `json:"show_id"`
	Name            string  `json:"name"`
	Weekday         int     `json:"weekday"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location"`
	Notes           string  `json:"notes"`
	Active          *bool   `json:"active"`
}

func (r *TemplateRequest) toDomain() *rehearsals.TemplateInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &rehearsals.TemplateInput{
		ShowID:          r.ShowID,
		Name:            r.Name,
		Weekday:         time.Weekday(r.Weekday),
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Location:        r.Location,
		Notes:           r.Notes,
		Active:          active,
	}
}

// TemplateResponse is a rehearsal template
type TemplateResponse struct {
	ID              string  `json:"id"`
	ShowID          *string `json:"show_id,omitempty"`
	Name            string  `json:"name"`
	Weekday         int     `json:"weekday"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Active          bool    `json:"active"`
}

func toTemplateResponse(t *rehearsals.Template) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		ShowID:          t.ShowID,
		Name:            t.Name,
		Weekday:         int(t.Weekday),
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		Location:        t.Location,
		Notes:           t.Notes,
		Active:          t.Active,
	}
}

// InstantiateRequest is the body of POST /rehearsal-templates/:id/instantiate
type InstantiateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Validate for validating InstantiateRequest struct
func (r *InstantiateRequest) Validate() error {
	return validators.Struct(r)
}

// GenerateSeriesRequest is the body of POST /rehearsal-templates/:id/series
type GenerateSeriesRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// Validate for validating GenerateSeriesRequest struct
func (r *GenerateSeriesRequest) Validate() error {
	return validators.Struct(r)
}

// RehearsalRequest is the body of POST/PUT /rehearsals
type RehearsalRequest struct {
	ShowID   *string   `json:"show_id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
}

func (r *RehearsalRequest) toDomain() *rehearsals.RehearsalInput {
	return &rehearsals.RehearsalInput{
		ShowID:   r.ShowID,
		Title:    r.Title,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Location: r.Location,
		Notes:    r.Notes,
	}
}

// RehearsalResponse is a rehearsal
type RehearsalResponse struct {
	ID         string    `json:"id"`
	ShowID     *string   `json:"show_id,omitempty"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Status     string    `json:"status"`
	TemplateID *string   `json:"template_id,omitempty"`
}

func toRehearsalResponse(r *rehearsals.Rehearsal) RehearsalResponse {
	return RehearsalResponse{
		ID:         r.ID,
		ShowID:     r.ShowID,
		Title:      r.Title,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Location:   r.Location,
		Notes:      r.Notes,
		Status:     string(r.Status),
		TemplateID: r.TemplateID,
	}
}

func toRehearsalResponses(list []*rehearsals.Rehearsal) []RehearsalResponse {
	out := make([]RehearsalResponse, len(list))
	for i, r := range list {
		out[i] = toRehearsalResponse(r)
	}
	return out
}

// SkippedDateResponse is a series date that got no rehearsal
type SkippedDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// SeriesResponse reports the outcome of a series generation
type SeriesResponse struct {
	Created []RehearsalResponse   `json:"created"`
	Skipped []SkippedDateResponse `json:"skipped"`
}

func toSeriesResponse(res *rehearsals.SeriesResult) SeriesResponse {
	out := SeriesResponse{
		Created: toRehearsalResponses(res.Created),
		Skipped: make([]SkippedDateResponse, len(res.Skipped)),
	}
	for i, s := range res.Skipped {
		out.Skipped[i] = SkippedDateResponse{Date: formatDate(s.Date), Reason: s.Reason}
	}
	return out
}

// RespondRequest is the body of PUT /rehearsals/:id/attendance
type RespondRequest struct {
	Response string `json:"response"`
	Note     string `json:"note"`
}

// AttendanceResponse is one member's answer to a rehearsal
type AttendanceResponse struct {
	RehearsalID string    `json:"rehearsal_id"`
	UserID      string    `json:"user_id"`
	Response    string    `json:"response"`
	Note        string    `json:"note,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAttendanceResponses(list []*rehearsals.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, len(list))
	for i, a := range list {
		out[i] = AttendanceResponse{
			RehearsalID: a.RehearsalID,
			UserID:      a.UserID,
			Response:    string(a.Response),
			Note:        a.Note,
			UpdatedAt:   a.UpdatedAt,
		}
	}
	return out
}

// AttendanceOverviewResponse counts the answers to one rehearsal
type AttendanceOverviewResponse struct {
	Rehearsal RehearsalResponse    `json:"rehearsal"`
	Yes       int                  `json:"yes"`
	No        int                  `json:"no"`
	Maybe     int                  `json:"maybe"`
	Responses []AttendanceResponse `json:"responses"`
}

// HolidayResponse is one stored holiday
type HolidayResponse struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Region string `json:"region"`
}

func toHolidayResponses(list []holidays.Holiday) []HolidayResponse {
	out := make([]HolidayResponse, len(list))
	for i, h := range list {
		out[i] = HolidayResponse{Date: h.DateKey(), Name: h.Name, Source: string(h.Source), Region: h.Region}
	}
	return out
}

// SyncHolidaysResponse reports which source delivered a year
type SyncHolidaysResponse struct {
	Year     int               `json:"year"`
	Source   string            `json:"source"`
	Holidays []HolidayResponse `json:"holidays"`
}

// BudgetRequest is the body of POST/PUT /finance/budgets
type BudgetRequest struct {
	ShowID       *string `json:"show_id"`
	Category     string  `json:"category"`
	PlannedCents int64   `json:"planned_cents"`
	Scope        string  `json:"scope"`
	Notes        string  `json:"notes"`
}

func (r *BudgetRequest) toDomain() *finance.BudgetInput {
	return &finance.BudgetInput{
		ShowID:       r.ShowID,
		Category:     r.Category,
		PlannedCents: r.PlannedCents,
		Scope:        access.VisibilityScope(r.Scope),
		Notes:        r.Notes,
	}
}

// BudgetResponse is a planned amount
type BudgetResponse struct {
	ID           string  `json:"id"`
	ShowID       *string `json:"show_id,omitempty"`
	Category     string  `json:"category"`
	PlannedCents int64   `json:"planned_cents"`
	Scope        string  `json:"scope"`
	Notes        string  `json:"notes,omitempty"`
}

func toBudgetResponse(b *finance.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID,
		ShowID:       b.ShowID,
		Category:     b.Category,
		PlannedCents: b.PlannedCents,
		Scope:        string(b.Scope),
		Notes:        b.Notes,
	}
}

// EntryRequest is the body of POST/PUT /finance/entries
type EntryRequest struct {
	ShowID      *string `json:"show_id"`
	BudgetID    *string `json:"budget_id"`
	Kind        string  `json:"kind"`
	AmountCents int64   `json:"amount_cents"`
	Description string  `json:"description"`
	BookedOn    string  `json:"booked_on" validate:"required,datetime=2006-01-02"`
	Scope       string  `json:"scope"`
}

// Validate for validating EntryRequest struct
func (r *EntryRequest) Validate() error {
	return validators.Struct(r)
}

func (r *EntryRequest) toDomain() (*finance.EntryInput, error) {
	booked, err := time.Parse(time.DateOnly, r.BookedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date: %w", err)
	}
	return &finance.EntryInput{
		ShowID:      r.ShowID,
		BudgetID:    r.BudgetID,
		Kind:        finance.Kind(r.Kind),
		AmountCents: r.AmountCents,
		Description: r.Description,
		BookedOn:    booked,
		Scope:       access.VisibilityScope(r.Scope),
	}, nil
}

// RejectEntryRequest is the body of POST /finance/entries/:id/reject
type RejectEntryRequest struct {
	Reason string `json:"reason"`
}

// EntryResponse is a booking
type EntryResponse struct {
	ID              string     `json:"id"`
	ShowID          *string    `json:"show_id,omitempty"`
	BudgetID        *string    `json:"budget_id,omitempty"`
	Kind            string     `json:"kind"`
	AmountCents     int64      `json:"amount_cents"`
	Description     string     `json:"description"`
	BookedOn        string     `json:"booked_on"`
	Scope           string     `json:"scope"`
	Status          string     `json:"status"`
	CreatedBy       string     `json:"created_by"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toEntryResponse(e *finance.Entry) EntryResponse {
	return EntryResponse{
		ID:              e.ID,
		ShowID:          e.ShowID,
		BudgetID:        e.BudgetID,
		Kind:            string(e.Kind),
		AmountCents:     e.AmountCents,
		Description:     e.Description,
		BookedOn:        formatDate(e.BookedOn),
		Scope:           string(e.Scope),
		Status:          string(e.Status),
		CreatedBy:       e.CreatedBy,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}

// CategorySummaryResponse compares plan and actuals of one category
type CategorySummaryResponse struct {
	Category      string `json:"category"`
	PlannedCents  int64  `json:"planned_cents"`
	IncomeCents   int64  `json:"income_cents"`
	ExpenseCents  int64  `json:"expense_cents"`
	VarianceCents int64  `json:"variance_cents"`
}

// SummaryResponse is the budget-versus-actual view
type SummaryResponse struct {
	ShowID            string                    `json:"show_id,omitempty"`
	Categories        []CategorySummaryResponse `json:"categories"`
	TotalPlannedCents int64                     `json:"total_planned_cents"`
	TotalIncomeCents  int64                     `json:"total_income_cents"`
	TotalExpenseCents int64                     `json:"total_expense_cents"`
	BalanceCents      int64                     `json:"balance_cents"`
	PendingCount      int                       `json:"pending_count"`
}

func toSummaryResponse(s *finance.Summary) SummaryResponse {
	out := SummaryResponse{
		ShowID:            s.ShowID,
		Categories:        make([]CategorySummaryResponse, len(s.Categories)),
		TotalPlannedCents: s.TotalPlannedCents,
		TotalIncomeCents:  s.TotalIncomeCents,
		TotalExpenseCents: s.TotalExpenseCents,
		BalanceCents:      s.BalanceCents,
		PendingCount:      s.PendingCount,
	}
	for i, c := range s.Categories {
		out.Categories[i] = CategorySummaryResponse(c)
	}
	return out
}
