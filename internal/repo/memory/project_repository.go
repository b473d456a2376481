package memory

import (
	"sync"

	"sparkz/internal/entity"
)

type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, bool)
	Like(id string) bool
	AddDonation(id string, amount float64) bool
	List() []*entity.Project
	Count() int
}

// projectRepository keeps the catalog as an ordered in-memory collection,
// newest first. A mutex makes each find-and-mutate atomic under gin's
// concurrent request handling; there is no durable backing store.
type projectRepository struct {
	mu       sync.RWMutex
	projects []*entity.Project
}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Prepend: the catalog is ordered newest-first
	r.projects = append([]*entity.Project{project}, r.projects...)
	return nil
}

func (r *projectRepository) GetByID(id string) (*entity.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			copied := *p
			return &copied, true
		}
	}
	return nil, false
}

// Like increments the like counter. Repeated likes stack; there is no
// de-duplication. Returns false when the project does not exist.
func (r *projectRepository) Like(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.projects {
		if p.ID == id {
			p.Likes++
			return true
		}
	}
	return false
}

// AddDonation accumulates amount onto the project's donation total. Returns
// false when the project does not exist.
func (r *projectRepository) AddDonation(id string, amount float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.projects {
		if p.ID == id {
			p.CurrentDonation += amount
			return true
		}
	}
	return false
}

// List returns a snapshot of the catalog in insertion order (newest first).
func (r *projectRepository) List() []*entity.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Project, len(r.projects))
	for i, p := range r.projects {
		copied := *p
		out[i] = &copied
	}
	return out
}

func (r *projectRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}
