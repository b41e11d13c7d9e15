package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/errors"
)

// MemoryStore keeps documents in process. It backs STORAGE_DRIVER=memory and
// the use case and handler tests. Every read returns a deep copy.
type MemoryStore struct {
	mu            sync.RWMutex
	projects      map[string]*entity.Project
	users         map[string]*entity.User
	notifications []*entity.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]*entity.Project),
		users:    make(map[string]*entity.User),
	}
}

func (s *MemoryStore) Projects() repository.ProjectRepository {
	return &memoryProjectRepository{store: s}
}

func (s *MemoryStore) Users() repository.UserRepository {
	return &memoryUserRepository{store: s}
}

func (s *MemoryStore) Notifications() repository.NotificationRepository {
	return &memoryNotificationRepository{store: s}
}

func copyProject(p *entity.Project) *entity.Project {
	c := *p
	c.Reports = append([]entity.ProjectComplaint(nil), p.Reports...)
	c.ReportIDs = append([]string(nil), p.ReportIDs...)
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.ReportedBy = append([]entity.UserComplaint(nil), u.ReportedBy...)
	c.ReportIDs = append([]string(nil), u.ReportIDs...)
	return &c
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type memoryProjectRepository struct {
	store *MemoryStore
}

func (r *memoryProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	project.ReindexReports()

	r.store.projects[project.ID] = copyProject(project)
	return nil
}

func (r *memoryProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}
	return copyProject(p), nil
}

func (r *memoryProjectRepository) ListReported(ctx context.Context) ([]*entity.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var projects []*entity.Project
	for _, id := range sortedKeys(r.store.projects) {
		p := r.store.projects[id]
		if p.ReportCount > 0 {
			projects = append(projects, copyProject(p))
		}
	}
	return projects, nil
}

func (r *memoryProjectRepository) AddReport(ctx context.Context, projectID string, complaint entity.ProjectComplaint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.projects[projectID]
	if !ok {
		return errors.NotFound("Project", nil)
	}
	p.Reports = append(p.Reports, complaint)
	p.ReindexReports()
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memoryProjectRepository) RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.ProjectComplaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var owner *entity.Project
	for _, id := range sortedKeys(r.store.projects) {
		p := r.store.projects[id]
		if p.FindReport(reportID) >= 0 {
			if owner != nil {
				return nil, errors.Conflict("Report id is shared by more than one owner")
			}
			owner = p
		}
	}
	if owner == nil {
		return nil, errors.NotFound("Fraud report", nil)
	}

	idx := owner.FindReport(reportID)
	msg, ts := message, at
	owner.Reports[idx].ResponseMessage = &msg
	owner.Reports[idx].ResponseAt = &ts
	owner.UpdatedAt = at

	updated := owner.Reports[idx]
	return &updated, nil
}

func (r *memoryProjectRepository) DeleteReport(ctx context.Context, projectID, reportID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.projects[projectID]
	if !ok {
		return errors.NotFound("Project", nil)
	}
	idx := p.FindReport(reportID)
	if idx < 0 {
		return errors.NotFound("Fraud report", nil)
	}
	p.Reports = append(p.Reports[:idx], p.Reports[idx+1:]...)
	p.ReindexReports()
	p.UpdatedAt = time.Now()
	return nil
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.ReindexReports()

	r.store.users[user.ID] = copyUser(user)
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return copyUser(u), nil
}

func (r *memoryUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			users[id] = copyUser(u)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) ListReported(ctx context.Context) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var users []*entity.User
	for _, id := range sortedKeys(r.store.users) {
		u := r.store.users[id]
		if u.ReportCount > 0 {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *memoryUserRepository) AddReport(ctx context.Context, userID string, complaint entity.UserComplaint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	u.ReportedBy = append(u.ReportedBy, complaint)
	u.ReindexReports()
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepository) RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.UserComplaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var owner *entity.User
	for _, id := range sortedKeys(r.store.users) {
		u := r.store.users[id]
		if u.FindReport(reportID) >= 0 {
			if owner != nil {
				return nil, errors.Conflict("Report id is shared by more than one owner")
			}
			owner = u
		}
	}
	if owner == nil {
		return nil, errors.NotFound("Fraud report", nil)
	}

	idx := owner.FindReport(reportID)
	msg, ts := message, at
	owner.ReportedBy[idx].ResponseMessage = &msg
	owner.ReportedBy[idx].ResponseAt = &ts
	owner.UpdatedAt = at

	updated := owner.ReportedBy[idx]
	return &updated, nil
}

func (r *memoryUserRepository) DeleteReport(ctx context.Context, userID, reportID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	idx := u.FindReport(reportID)
	if idx < 0 {
		return errors.NotFound("Fraud report", nil)
	}
	u.ReportedBy = append(u.ReportedBy[:idx], u.ReportedBy[idx+1:]...)
	u.ReindexReports()
	u.UpdatedAt = time.Now()
	return nil
}

type memoryNotificationRepository struct {
	store *MemoryStore
}

func (r *memoryNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	n := *notification
	r.store.notifications = append(r.store.notifications, &n)
	return nil
}

func (r *memoryNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := []*entity.Notification{}
	for i := len(r.store.notifications) - 1; i >= 0; i-- {
		n := r.store.notifications[i]
		if n.UserID != userID {
			continue
		}
		c := *n
		result = append(result, &c)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
