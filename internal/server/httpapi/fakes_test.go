package httpapi

import (
	"context"

	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/services"
)

type fakeUsers struct {
	session *services.Session
	err     error
	gotUser string
	gotPass string
	list    []models.Identity
	caller  models.Identity
}

func (f *fakeUsers) Register(_ context.Context, u, p string) (*services.Session, error) {
	f.gotUser, f.gotPass = u, p
	return f.session, f.err
}
func (f *fakeUsers) LoginUser(_ context.Context, u, p string) (*services.Session, error) {
	f.gotUser, f.gotPass = u, p
	return f.session, f.err
}
func (f *fakeUsers) LoginLibrarian(_ context.Context, u, p string) (*services.Session, error) {
	f.gotUser, f.gotPass = u, p
	return f.session, f.err
}
func (f *fakeUsers) ListUsers(_ context.Context, caller models.Identity) ([]models.Identity, error) {
	f.caller = caller
	return f.list, f.err
}

type fakeSections struct {
	err     error
	section *models.Section
	list    []models.Section
	gotID   int64
	gotIn   services.SectionInput
	caller  models.Identity
}

func (f *fakeSections) Create(_ context.Context, c models.Identity, in services.SectionInput) (*models.Section, error) {
	f.caller, f.gotIn = c, in
	return f.section, f.err
}
func (f *fakeSections) List(context.Context) ([]models.Section, error) { return f.list, f.err }
func (f *fakeSections) Get(_ context.Context, id int64) (*models.Section, error) {
	f.gotID = id
	return f.section, f.err
}
func (f *fakeSections) Update(_ context.Context, c models.Identity, id int64, in services.SectionInput) error {
	f.caller, f.gotID, f.gotIn = c, id, in
	return f.err
}
func (f *fakeSections) Delete(_ context.Context, c models.Identity, id int64) error {
	f.caller, f.gotID = c, id
	return f.err
}

type fakeEbooks struct {
	err          error
	ebook        *models.Ebook
	list         []models.Ebook
	withStatus   []models.EbookWithStatus
	gotSectionID *int64
	gotID        int64
	gotIn        services.EbookInput
}

func (f *fakeEbooks) Create(_ context.Context, _ models.Identity, in services.EbookInput) (*models.Ebook, error) {
	f.gotIn = in
	return f.ebook, f.err
}
func (f *fakeEbooks) List(_ context.Context, sectionID *int64) ([]models.Ebook, error) {
	f.gotSectionID = sectionID
	return f.list, f.err
}
func (f *fakeEbooks) Get(_ context.Context, id int64) (*models.Ebook, error) {
	f.gotID = id
	return f.ebook, f.err
}
func (f *fakeEbooks) Update(_ context.Context, _ models.Identity, id int64, in services.EbookInput) error {
	f.gotID, f.gotIn = id, in
	return f.err
}
func (f *fakeEbooks) Delete(_ context.Context, _ models.Identity, id int64) error {
	f.gotID = id
	return f.err
}
func (f *fakeEbooks) ListRequestedByCaller(context.Context, models.Identity) ([]models.EbookWithStatus, error) {
	return f.withStatus, f.err
}
func (f *fakeEbooks) ListWithFeedbackByUser(_ context.Context, userID int64) ([]models.Ebook, error) {
	f.gotID = userID
	return f.list, f.err
}

type fakeRequests struct {
	err       error
	req       *models.EbookRequest
	list      []models.EbookRequest
	gotIn     services.EbookRequestInput
	gotStatus string
	gotID     int64
	caller    models.Identity
}

func (f *fakeRequests) Create(_ context.Context, c models.Identity, in services.EbookRequestInput) (*models.EbookRequest, error) {
	f.caller, f.gotIn = c, in
	return f.req, f.err
}
func (f *fakeRequests) List(context.Context) ([]models.EbookRequest, error) { return f.list, f.err }
func (f *fakeRequests) ListForCaller(_ context.Context, c models.Identity) ([]models.EbookRequest, error) {
	f.caller = c
	return f.list, f.err
}
func (f *fakeRequests) Get(_ context.Context, id int64) (*models.EbookRequest, error) {
	f.gotID = id
	return f.req, f.err
}
func (f *fakeRequests) UpdateStatus(_ context.Context, c models.Identity, id int64, status string) (*models.EbookRequest, error) {
	f.caller, f.gotID, f.gotStatus = c, id, status
	return f.req, f.err
}
func (f *fakeRequests) Delete(_ context.Context, c models.Identity, id int64) error {
	f.caller, f.gotID = c, id
	return f.err
}

type fakeFeedback struct {
	err     error
	fb      *models.Feedback
	list    []models.Feedback
	gotIn   services.FeedbackInput
	gotID   int64
	gotText string
}

func (f *fakeFeedback) Create(_ context.Context, in services.FeedbackInput) (*models.Feedback, error) {
	f.gotIn = in
	return f.fb, f.err
}
func (f *fakeFeedback) List(context.Context) ([]models.Feedback, error) { return f.list, f.err }
func (f *fakeFeedback) Get(_ context.Context, id int64) (*models.Feedback, error) {
	f.gotID = id
	return f.fb, f.err
}
func (f *fakeFeedback) Update(_ context.Context, id int64, text string) error {
	f.gotID, f.gotText = id, text
	return f.err
}
func (f *fakeFeedback) Delete(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

type fakeStats struct {
	err    error
	caller models.Identity
}

func (f *fakeStats) Librarian(_ context.Context, c models.Identity) (*models.LibrarianStats, error) {
	f.caller = c
	if f.err != nil {
		return nil, f.err
	}
	return &models.LibrarianStats{TotalEbooks: 7, TotalSections: 2}, nil
}
func (f *fakeStats) User(_ context.Context, c models.Identity) (*models.UserStats, error) {
	f.caller = c
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserStats{}, nil
}

type fakes struct {
	users    *fakeUsers
	sections *fakeSections
	ebooks   *fakeEbooks
	requests *fakeRequests
	feedback *fakeFeedback
	stats    *fakeStats
}

func newFakes() *fakes {
	return &fakes{
		users:    &fakeUsers{},
		sections: &fakeSections{},
		ebooks:   &fakeEbooks{},
		requests: &fakeRequests{},
		feedback: &fakeFeedback{},
		stats:    &fakeStats{},
	}
}

func (f *fakes) services() Services {
	return Services{
		Users:         f.users,
		Sections:      f.sections,
		Ebooks:        f.ebooks,
		EbookRequests: f.requests,
		Feedback:      f.feedback,
		Stats:         f.stats,
	}
}
