// Package questionbank holds the per-domain question catalogue the
// assessment engine selects from.
package questionbank

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// ErrDuplicateQuestion is returned when a question ID already exists in a domain.
var ErrDuplicateQuestion = errors.New("duplicate question")

// Repository is an in-memory, concurrency-safe question catalogue keyed by
// domain. Questions keep their insertion order within a domain.
type Repository struct {
	mu      sync.RWMutex
	domains map[string][]cognition.Question
	ids     map[string]map[string]bool
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		domains: make(map[string][]cognition.Question),
		ids:     make(map[string]map[string]bool),
	}
}

// NewSeeded creates a repository populated with the built-in catalogue.
func NewSeeded() *Repository {
	r := New()
	for _, d := range seedDomains {
		r.ensureDomain(d.id)
		for _, q := range d.questions {
			q.Domain = d.id
			if err := r.AddQuestion(d.id, q); err != nil {
				panic(fmt.Sprintf("questionbank: invalid seed question: %v", err))
			}
		}
	}
	return r
}

// QuestionsFor returns the questions of a domain in insertion order. The
// returned slice is a copy; callers may filter it freely.
func (r *Repository) QuestionsFor(domain string) []cognition.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qs := r.domains[domain]
	out := make([]cognition.Question, len(qs))
	copy(out, qs)
	return out
}

// AddQuestion appends a question to a domain, creating the domain if needed.
// A question with an empty Domain inherits domain.
func (r *Repository) AddQuestion(domain string, q cognition.Question) error {
	if q.Domain == "" {
		q.Domain = domain
	}
	if q.Domain != domain {
		return fmt.Errorf("%w: %s: domain %q does not match %q",
			cognition.ErrInvalidQuestion, q.ID, q.Domain, domain)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	q.Options = append([]string(nil), q.Options...)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureDomainLocked(domain)
	if r.ids[domain][q.ID] {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateQuestion, domain, q.ID)
	}
	r.ids[domain][q.ID] = true
	r.domains[domain] = append(r.domains[domain], q)
	return nil
}

// Domains returns all known domain IDs, sorted. Domains without questions
// are included.
func (r *Repository) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.domains))
	for id := range r.domains {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of questions in a domain.
func (r *Repository) Count(domain string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.domains[domain])
}

func (r *Repository) ensureDomain(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureDomainLocked(domain)
}

func (r *Repository) ensureDomainLocked(domain string) {
	if _, ok := r.domains[domain]; !ok {
		r.domains[domain] = nil
		r.ids[domain] = make(map[string]bool)
	}
}
