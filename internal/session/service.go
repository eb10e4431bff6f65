// README: Session service; edit-draft lifecycle over a Store.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wayfarer/internal/plan"
	"wayfarer/internal/prefs"
	"wayfarer/internal/prompt"
)

// Service owns every mutation of the plan/draft pair. Handlers never
// touch Session fields directly.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a fresh session around a newly generated plan.
func (s *Service) Create(ctx context.Context, p prefs.Preferences, lang prompt.Language, tp *plan.TravelPlan) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Language:  lang,
		Prefs:     p,
		Plan:      tp,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// BeginEdit opens a draft as a deep copy of the committed plan. Calling
// it with a draft already open keeps the existing draft.
func (s *Service) BeginEdit(ctx context.Context, id string) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if sess.Draft == nil {
			sess.Draft = sess.Plan.Clone()
		}
		return nil
	})
}

// UpdateDraft replaces the open draft's content.
func (s *Service) UpdateDraft(ctx context.Context, id string, draft *plan.TravelPlan) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if sess.Draft == nil {
			return ErrNoDraft
		}
		sess.Draft = draft
		return nil
	})
}

// SaveEdit commits the draft as the new plan.
func (s *Service) SaveEdit(ctx context.Context, id string) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if sess.Draft == nil {
			return ErrNoDraft
		}
		sess.Plan = sess.Draft
		sess.Draft = nil
		return nil
	})
}

// CancelEdit discards the draft; the committed plan is untouched.
func (s *Service) CancelEdit(ctx context.Context, id string) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		sess.Draft = nil
		return nil
	})
}

// ReplacePlan installs a regenerated plan and drops any open draft.
func (s *Service) ReplacePlan(ctx context.Context, id string, tp *plan.TravelPlan) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		sess.Plan = tp
		sess.Draft = nil
		return nil
	})
}

func (s *Service) update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
