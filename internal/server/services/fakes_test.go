package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/events"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebookrequests"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebooks"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/sections"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/stats"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/users"
)

var (
	librarian = models.Identity{ID: 1, Username: "librarian", Role: models.RoleLibrarian}
	alice     = models.Identity{ID: 2, Username: "alice", Role: models.RoleUser}
	bob       = models.Identity{ID: 3, Username: "bob", Role: models.RoleUser}
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeStore backs every fake repository; a non-nil err fails every call.
// insertErr fails only request and feedback inserts.
type fakeStore struct {
	mu        sync.Mutex
	err       error
	insertErr error
	nextID    int64
	users     map[int64]models.User
	sections  map[int64]models.Section
	ebooks    map[int64]models.Ebook
	requests  map[int64]models.EbookRequest
	feedback  map[int64]models.Feedback
	locked    []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int64]models.User{},
		sections: map[int64]models.Section{},
		ebooks:   map[int64]models.Ebook{},
		requests: map[int64]models.EbookRequest{},
		feedback: map[int64]models.Feedback{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

type fakeRepoManager struct {
	s        *fakeStore
	stats    *fakeStatsRepo
	lastDBTX dbx.DBTX
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{s: newFakeStore(), stats: &fakeStatsRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return m.s.err }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	m.lastDBTX = db
	return &fakeUsersRepo{m.s}
}
func (m *fakeRepoManager) Sections(dbx.DBTX) sections.Repository { return &fakeSectionsRepo{m.s} }
func (m *fakeRepoManager) Ebooks(dbx.DBTX) ebooks.Repository     { return &fakeEbooksRepo{m.s} }
func (m *fakeRepoManager) EbookRequests(db dbx.DBTX) ebookrequests.Repository {
	m.lastDBTX = db
	return &fakeRequestsRepo{m.s}
}
func (m *fakeRepoManager) Feedback(dbx.DBTX) feedback.Repository { return &fakeFeedbackRepo{m.s} }
func (m *fakeRepoManager) Stats(dbx.DBTX) stats.Repository       { return m.stats }

type fakeUsersRepo struct{ s *fakeStore }

func (r *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return nil, common.ErrorConflict
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return u, nil
}

func (r *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) ListByRole(_ context.Context, role string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.User{}
	for _, u := range sortedValues(r.s.users) {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsersRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	list, err := r.ListByRole(ctx, role)
	return int64(len(list)), err
}

func (r *fakeUsersRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *fakeUsersRepo) LockByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	r.s.locked = append(r.s.locked, id)
	return nil
}

type fakeSectionsRepo struct{ s *fakeStore }

func (r *fakeSectionsRepo) Create(_ context.Context, sec *models.Section) (*models.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	sec.ID = r.s.id()
	sec.CreatedAt = time.Now()
	r.s.sections[sec.ID] = *sec
	return sec, nil
}

func (r *fakeSectionsRepo) List(context.Context) ([]models.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	return sortedValues(r.s.sections), nil
}

func (r *fakeSectionsRepo) Get(_ context.Context, id int64) (*models.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	sec, ok := r.s.sections[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &sec, nil
}

func (r *fakeSectionsRepo) Update(_ context.Context, sec *models.Section) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	cur, ok := r.s.sections[sec.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Name, cur.Description = sec.Name, sec.Description
	r.s.sections[sec.ID] = cur
	return nil
}

func (r *fakeSectionsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.sections[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.sections, id)
	return nil
}

func (r *fakeSectionsRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.sections[id]
	return ok, nil
}

type fakeEbooksRepo struct{ s *fakeStore }

func (r *fakeEbooksRepo) Create(_ context.Context, e *models.Ebook) (*models.Ebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	e.ID = r.s.id()
	r.s.ebooks[e.ID] = *e
	return e, nil
}

func (r *fakeEbooksRepo) List(context.Context) ([]models.Ebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	return sortedValues(r.s.ebooks), nil
}

func (r *fakeEbooksRepo) ListBySection(ctx context.Context, sectionID int64) ([]models.Ebook, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Ebook{}
	for _, e := range all {
		if e.SectionID == sectionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEbooksRepo) Get(_ context.Context, id int64) (*models.Ebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	e, ok := r.s.ebooks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

func (r *fakeEbooksRepo) Update(_ context.Context, e *models.Ebook) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.ebooks[e.ID]; !ok {
		return common.ErrorNotFound
	}
	r.s.ebooks[e.ID] = *e
	return nil
}

func (r *fakeEbooksRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.ebooks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.ebooks, id)
	return nil
}

func (r *fakeEbooksRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.ebooks[id]
	return ok, nil
}

func (r *fakeEbooksRepo) ListWithLatestStatus(ctx context.Context, userID int64) ([]models.EbookWithStatus, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.EbookWithStatus, 0, len(all))
	for _, e := range all {
		item := models.EbookWithStatus{Ebook: e}
		var latest int64
		for _, req := range r.s.requests {
			if req.UserID == userID && req.EbookID == e.ID && req.ID > latest {
				latest = req.ID
				st := req.Status
				item.Status = &st
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeEbooksRepo) ListWithFeedbackByUser(_ context.Context, userID int64) ([]models.Ebook, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.Ebook{}
	for _, f := range sortedValues(r.s.feedback) {
		if f.UserID == userID {
			out = append(out, r.s.ebooks[f.EbookID])
		}
	}
	return out, nil
}

type fakeRequestsRepo struct{ s *fakeStore }

func (r *fakeRequestsRepo) Create(_ context.Context, req *models.EbookRequest) (*models.EbookRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	if r.s.insertErr != nil {
		return nil, r.s.insertErr
	}
	req.ID = r.s.id()
	r.s.requests[req.ID] = *req
	return req, nil
}

func (r *fakeRequestsRepo) List(context.Context) ([]models.EbookRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	return sortedValues(r.s.requests), nil
}

func (r *fakeRequestsRepo) ListByUser(ctx context.Context, userID int64) ([]models.EbookRequest, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.EbookRequest{}
	for _, req := range all {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestsRepo) Get(_ context.Context, id int64) (*models.EbookRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	req, ok := r.s.requests[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &req, nil
}

func (r *fakeRequestsRepo) UpdateStatus(_ context.Context, id int64, status models.RequestStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	req, ok := r.s.requests[id]
	if !ok {
		return common.ErrorNotFound
	}
	req.Status = status
	r.s.requests[id] = req
	return nil
}

func (r *fakeRequestsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.requests[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.requests, id)
	return nil
}

func (r *fakeRequestsRepo) CountByUserAndStatus(_ context.Context, userID int64, status models.RequestStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, r.s.err
	}
	var n int64
	for _, req := range r.s.requests {
		if req.UserID == userID && req.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeFeedbackRepo struct{ s *fakeStore }

func (r *fakeFeedbackRepo) Create(_ context.Context, f *models.Feedback) (*models.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	if r.s.insertErr != nil {
		return nil, r.s.insertErr
	}
	f.ID = r.s.id()
	r.s.feedback[f.ID] = *f
	return f, nil
}

func (r *fakeFeedbackRepo) List(context.Context) ([]models.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	return sortedValues(r.s.feedback), nil
}

func (r *fakeFeedbackRepo) Get(_ context.Context, id int64) (*models.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	f, ok := r.s.feedback[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *fakeFeedbackRepo) UpdateText(_ context.Context, id int64, text string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	f, ok := r.s.feedback[id]
	if !ok {
		return common.ErrorNotFound
	}
	f.Feedback = text
	r.s.feedback[id] = f
	return nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.feedback[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.feedback, id)
	return nil
}

// fakeStatsRepo returns canned aggregates and records the limits it was asked for.
type fakeStatsRepo struct {
	err        error
	limits     []int
	grantedArg []bool
}

func (f *fakeStatsRepo) Totals(context.Context) (int64, int64, error) { return 20, 5, f.err }
func (f *fakeStatsRepo) RequestCounts(_ context.Context, limit int) ([]models.EbookRequestCount, error) {
	f.limits = append(f.limits, limit)
	return []models.EbookRequestCount{{Name: "Dune", RequestCount: 3}}, f.err
}
func (f *fakeStatsRepo) GrantedRequests(_ context.Context, overdueOnly bool) ([]models.EbookRequest, error) {
	f.grantedArg = append(f.grantedArg, overdueOnly)
	return []models.EbookRequest{}, f.err
}
func (f *fakeStatsRepo) UserActivity(context.Context) ([]models.UserActivity, error) {
	return []models.UserActivity{{Username: "alice", TotalRequests: 2, GrantedRequests: 1}}, f.err
}
func (f *fakeStatsRepo) FeedbackOverview(context.Context) ([]models.FeedbackSummary, error) {
	return []models.FeedbackSummary{}, f.err
}
func (f *fakeStatsRepo) EbooksBySection(context.Context) ([]models.SectionEbookCount, error) {
	return []models.SectionEbookCount{{SectionName: "Fantasy", EbookCount: 4}}, f.err
}
func (f *fakeStatsRepo) BorrowingHistory(context.Context, int64, bool) ([]models.BorrowedEbook, error) {
	return []models.BorrowedEbook{}, f.err
}
func (f *fakeStatsRepo) OverdueBooks(context.Context, int64) ([]models.OverdueEbook, error) {
	return []models.OverdueEbook{}, f.err
}
func (f *fakeStatsRepo) FeedbackGiven(context.Context, int64) ([]models.GivenFeedback, error) {
	return []models.GivenFeedback{}, f.err
}
func (f *fakeStatsRepo) RecentlyAdded(_ context.Context, limit int) ([]models.RecentEbook, error) {
	f.limits = append(f.limits, limit)
	return []models.RecentEbook{}, f.err
}

const (
	seededSection int64 = 10
	seededEbook   int64 = 11
)

// seedLibrary inserts the three test identities, one section and one ebook.
func seedLibrary(m *fakeRepoManager) {
	for _, id := range []models.Identity{librarian, alice, bob} {
		m.s.users[id.ID] = models.User{ID: id.ID, Username: id.Username, Role: id.Role, PasswordHash: "x"}
	}
	m.s.sections[seededSection] = models.Section{ID: seededSection, Name: "Fantasy", Description: "Dragons"}
	m.s.ebooks[seededEbook] = models.Ebook{ID: seededEbook, SectionID: seededSection, Name: "Dune", Content: "...", Author: "Herbert"}
	m.s.nextID = 100
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
