//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of auth.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*access.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.Principal), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, p *access.Principal, current, next string) error {
	args := m.Called(ctx, p, current, next)
	return args.Error(0)
}

// MockMemberService is a mock implementation of members.Service
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) List(ctx context.Context, p *access.Principal, query *members.UserQuery) ([]*members.User, error) {
	args := m.Called(ctx, p, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*members.User), args.Error(1)
}

func (m *MockMemberService) GetByID(ctx context.Context, p *access.Principal, userID string) (*members.User, error) {
	args := m.Called(ctx, p, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

func (m *MockMemberService) UpdateOwnProfile(ctx context.Context, p *access.Principal, update *members.ProfileUpdate) (*members.User, error) {
	args := m.Called(ctx, p, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

func (m *MockMemberService) UpdateRoles(ctx context.Context, p *access.Principal, userID string, roles []access.Role) (*members.User, error) {
	args := m.Called(ctx, p, userID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

func (m *MockMemberService) SetActive(ctx context.Context, p *access.Principal, userID string, active bool) (*members.User, error) {
	args := m.Called(ctx, p, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

func (m *MockMemberService) CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*members.User, error) {
	args := m.Called(ctx, email, password, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

// MockOnboardingService is a mock implementation of onboarding.Service
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) CreateInvite(ctx context.Context, p *access.Principal, req *onboarding.CreateInviteRequest) (*onboarding.CreatedInvite, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.CreatedInvite), args.Error(1)
}

func (m *MockOnboardingService) ListInvites(ctx context.Context, p *access.Principal, includeClosed bool) ([]*onboarding.Invite, error) {
	args := m.Called(ctx, p, includeClosed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*onboarding.Invite), args.Error(1)
}

func (m *MockOnboardingService) RevokeInvite(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockOnboardingService) Inspect(ctx context.Context, token string) (*onboarding.InviteInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.InviteInfo), args.Error(1)
}

func (m *MockOnboardingService) Redeem(ctx context.Context, token string, req *onboarding.RedeemRequest) (*members.User, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*members.User), args.Error(1)
}

func (m *MockOnboardingService) GetProfile(ctx context.Context, p *access.Principal, userID string) (*onboarding.Profile, error) {
	args := m.Called(ctx, p, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Profile), args.Error(1)
}

// MockChronikService is a mock implementation of shows.ChronikService
type MockChronikService struct {
	mock.Mock
}

func (m *MockChronikService) Chronik(ctx context.Context) ([]shows.ChronikYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shows.ChronikYear), args.Error(1)
}

func (m *MockChronikService) Year(ctx context.Context, year int) (*shows.ChronikYear, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shows.ChronikYear), args.Error(1)
}

// MockGalleryService is a mock implementation of shows.GalleryService
type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) Upload(ctx context.Context, p *access.Principal, showID string, upload *shows.ImageUpload, content io.Reader) (*shows.GalleryImage, error) {
	args := m.Called(ctx, p, showID, upload, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shows.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) List(ctx context.Context, p *access.Principal, showID string) ([]*shows.GalleryImage, error) {
	args := m.Called(ctx, p, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shows.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) Delete(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockGalleryService) OpenPublic(ctx context.Context, id string) (*shows.GalleryImage, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*shows.GalleryImage), args.Get(1).(io.ReadCloser), args.Error(2)
}

// MockHolidayService is a mock implementation of holidays.Service
type MockHolidayService struct {
	mock.Mock
}

func (m *MockHolidayService) Sync(ctx context.Context, p *access.Principal, year int) (*holidays.SyncResult, error) {
	args := m.Called(ctx, p, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*holidays.SyncResult), args.Error(1)
}

func (m *MockHolidayService) List(ctx context.Context, year int) ([]holidays.Holiday, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]holidays.Holiday), args.Error(1)
}

func (m *MockHolidayService) HolidaysBetween(ctx context.Context, from, to time.Time) (map[string]string, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockRehearsalService is a mock implementation of rehearsals.Service
type MockRehearsalService struct {
	mock.Mock
}

func (m *MockRehearsalService) Create(ctx context.Context, p *access.Principal, in *rehearsals.RehearsalInput) (*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) GetByID(ctx context.Context, p *access.Principal, id string) (*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) List(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Update(ctx context.Context, p *access.Principal, id string, in *rehearsals.RehearsalInput) (*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Cancel(ctx context.Context, p *access.Principal, id string) (*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Delete(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockRehearsalService) Respond(ctx context.Context, p *access.Principal, id string, response rehearsals.Response, note string) (*rehearsals.Attendance, error) {
	args := m.Called(ctx, p, id, response, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Attendance), args.Error(1)
}

func (m *MockRehearsalService) Attendance(ctx context.Context, p *access.Principal, id string) (*rehearsals.AttendanceOverview, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.AttendanceOverview), args.Error(1)
}

func (m *MockRehearsalService) OwnResponses(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]*rehearsals.Attendance, error) {
	args := m.Called(ctx, p, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rehearsals.Attendance), args.Error(1)
}

func (m *MockRehearsalService) PlanPDF(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]byte, error) {
	args := m.Called(ctx, p, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFinanceService is a mock implementation of finance.Service
type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) CreateBudget(ctx context.Context, p *access.Principal, in *finance.BudgetInput) (*finance.Budget, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Budget), args.Error(1)
}

func (m *MockFinanceService) ListBudgets(ctx context.Context, p *access.Principal, showID string) ([]*finance.Budget, error) {
	args := m.Called(ctx, p, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Budget), args.Error(1)
}

func (m *MockFinanceService) UpdateBudget(ctx context.Context, p *access.Principal, id string, in *finance.BudgetInput) (*finance.Budget, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Budget), args.Error(1)
}

func (m *MockFinanceService) DeleteBudget(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockFinanceService) CreateEntry(ctx context.Context, p *access.Principal, in *finance.EntryInput) (*finance.Entry, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) GetEntry(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) ListEntries(ctx context.Context, p *access.Principal, query *finance.EntryQuery) ([]*finance.Entry, error) {
	args := m.Called(ctx, p, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) UpdateEntry(ctx context.Context, p *access.Principal, id string, in *finance.EntryInput) (*finance.Entry, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) DeleteEntry(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockFinanceService) Approve(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) Reject(ctx context.Context, p *access.Principal, id string, reason string) (*finance.Entry, error) {
	args := m.Called(ctx, p, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceService) Summary(ctx context.Context, p *access.Principal, showID string) (*finance.Summary, error) {
	args := m.Called(ctx, p, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Summary), args.Error(1)
}

func (m *MockFinanceService) ExportCSV(ctx context.Context, p *access.Principal, query *finance.EntryQuery, w io.Writer) error {
	args := m.Called(ctx, p, query, w)
	if fn, ok := args.Get(0).(func(io.Writer)); ok {
		fn(w)
		return nil
	}
	return args.Error(0)
}

// MockTemplateService is a mock implementation of rehearsals.TemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Create(ctx context.Context, p *access.Principal, in *rehearsals.TemplateInput) (*rehearsals.Template, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Template), args.Error(1)
}

func (m *MockTemplateService) GetByID(ctx context.Context, p *access.Principal, id string) (*rehearsals.Template, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Template), args.Error(1)
}

func (m *MockTemplateService) List(ctx context.Context, p *access.Principal, activeOnly bool) ([]*rehearsals.Template, error) {
	args := m.Called(ctx, p, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rehearsals.Template), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, p *access.Principal, id string, in *rehearsals.TemplateInput) (*rehearsals.Template, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Template), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, p *access.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockTemplateService) Instantiate(ctx context.Context, p *access.Principal, id string, date time.Time) (*rehearsals.Rehearsal, error) {
	args := m.Called(ctx, p, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.Rehearsal), args.Error(1)
}

func (m *MockTemplateService) GenerateSeries(ctx context.Context, p *access.Principal, id string, from, to time.Time) (*rehearsals.SeriesResult, error) {
	args := m.Called(ctx, p, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rehearsals.SeriesResult), args.Error(1)
}
