package services

import (
	"sync"
	"time"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm-backed behaviour the
// services rely on, in particular returning gorm.ErrRecordNotFound for
// missing rows.

type fakeStudentRepo struct {
	students map[string]*domain.Student
	order    []string
	nextID   uint
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*domain.Student{}}
}

func (r *fakeStudentRepo) CreateStudent(st *domain.Student) (*domain.Student, error) {
	id := repository.CanonicalStudentID(st.StudentID)
	if _, ok := r.students[id]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	r.nextID++
	st.ID = r.nextID
	st.StudentID = id
	cp := *st
	r.students[id] = &cp
	r.order = append(r.order, id)
	return st, nil
}

func (r *fakeStudentRepo) FindByStudentID(studentID string) (*domain.Student, error) {
	st, ok := r.students[repository.CanonicalStudentID(studentID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStudentRepo) ListStudents() ([]domain.Student, error) {
	out := make([]domain.Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.students[id])
	}
	return out, nil
}

func (r *fakeStudentRepo) SaveStudent(st *domain.Student) error {
	id := repository.CanonicalStudentID(st.StudentID)
	if _, ok := r.students[id]; !ok {
		r.order = append(r.order, id)
	}
	cp := *st
	cp.StudentID = id
	r.students[id] = &cp
	return nil
}

func (r *fakeStudentRepo) SetVerificationStatus(studentID string, status string) error {
	st, ok := r.students[repository.CanonicalStudentID(studentID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	st.VerificationStatus = status
	return nil
}

type fakePlacementRepo struct {
	placements map[uint]*domain.Placement
	order      []uint
	nextID     uint
}

func newFakePlacementRepo() *fakePlacementRepo {
	return &fakePlacementRepo{placements: map[uint]*domain.Placement{}}
}

func (r *fakePlacementRepo) CreatePlacement(p *domain.Placement) (*domain.Placement, error) {
	r.nextID++
	p.ID = r.nextID
	p.StudentID = repository.CanonicalStudentID(p.StudentID)
	cp := *p
	r.placements[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *fakePlacementRepo) FindByID(id uint) (*domain.Placement, error) {
	p, ok := r.placements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlacementRepo) ListByStudent(studentID string) ([]domain.Placement, error) {
	id := repository.CanonicalStudentID(studentID)
	var out []domain.Placement
	for _, pid := range r.order {
		if r.placements[pid].StudentID == id {
			out = append(out, *r.placements[pid])
		}
	}
	return out, nil
}

func (r *fakePlacementRepo) ListAll() ([]domain.Placement, error) {
	out := make([]domain.Placement, 0, len(r.order))
	for _, pid := range r.order {
		out = append(out, *r.placements[pid])
	}
	return out, nil
}

func (r *fakePlacementRepo) ListPending(limit, offset int) ([]domain.Placement, error) {
	var pending []domain.Placement
	for _, pid := range r.order {
		if r.placements[pid].VerificationStatus == domain.VerifyPending {
			pending = append(pending, *r.placements[pid])
		}
	}
	if offset >= len(pending) {
		return nil, nil
	}
	pending = pending[offset:]
	if limit > 0 && limit < len(pending) {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *fakePlacementRepo) SavePlacement(p *domain.Placement) error {
	cp := *p
	r.placements[p.ID] = &cp
	return nil
}

func (r *fakePlacementRepo) DeletePlacement(id uint) error {
	if _, ok := r.placements[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.placements, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakePlacementRepo) SetVerificationStatus(id uint, status string) error {
	p, ok := r.placements[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.VerificationStatus = status
	return nil
}

type fakeCompanyRepo struct {
	companies map[uint]*domain.Company
	order     []uint
	nextID    uint
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uint]*domain.Company{}}
}

func (r *fakeCompanyRepo) CreateCompany(c *domain.Company) (*domain.Company, error) {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.companies[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *fakeCompanyRepo) FindByID(id uint) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) ListCompanies() ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.companies[id])
	}
	return out, nil
}

func (r *fakeCompanyRepo) SaveCompany(c *domain.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) DeleteCompany(id uint) error {
	if _, ok := r.companies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.companies, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(n *domain.Notification) error {
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListRecent(recipient string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Recipient != recipient {
			continue
		}
		out = append(out, r.notifications[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(recipient string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.Recipient == recipient && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(recipient string, id uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].Recipient == recipient {
			r.notifications[i].Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(recipient string) error {
	for i := range r.notifications {
		if r.notifications[i].Recipient == recipient {
			r.notifications[i].Read = true
		}
	}
	return nil
}

type fakeActivityRepo struct {
	entries []domain.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) CreateEntry(e *domain.ActivityLog) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeActivityRepo) ListRecent(limit, offset int) ([]domain.ActivityLog, error) {
	return r.entries, nil
}

// fakeProducer records published payloads; worker pool goroutines call
// it concurrently.
type fakeProducer struct {
	mu        sync.Mutex
	published [][]byte
	err       error
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	p.published = append(p.published, cp)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func (p *fakeProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}
