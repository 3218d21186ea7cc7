package reminder

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/exp/slog"
)

// Servicer is the set of operations the reminders routes need.
type Servicer interface {
	List(ctx context.Context) ([]Reminder, error)
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, reminders []Reminder) error
}

// Service keeps reminders in one collection of the store.
type Service struct {
	store      Store
	collection string
	log        *slog.Logger
}

// NewService creates a service for the collection at the given store path,
// e.g. "reminders" or "reminders/v2".
func NewService(store Store, collection string, log *slog.Logger) Servicer {
	return &Service{
		store:      store,
		collection: collection,
		log:        log.With("component", "reminder_service", "collection", collection),
	}
}

// List returns every reminder of the collection. A collection the codec
// cannot read is reported as empty.
func (s *Service) List(ctx context.Context) ([]Reminder, error) {
	raw, err := s.store.Get(ctx, s.collection)
	if err != nil {
		s.log.Error("failed to get reminders", "error", err)
		return nil, err
	}

	reminders, err := Decode(raw)
	if errors.Is(err, ErrNotCollection) {
		s.log.Warn("no reminders in store")
		return reminders, nil
	}

	return reminders, err
}

// Create stores a new reminder; the store assigns its id.
func (s *Service) Create(ctx context.Context, r Reminder) error {
	if r.HasID() {
		return ErrUnexpectedID
	}

	if err := s.store.Post(ctx, s.collection, r); err != nil {
		s.log.Error("failed to create reminder", "error", err)
		return err
	}

	s.log.Info("reminder created", "title", r.Title)
	return nil
}

// Update replaces the reminder addressed by r.ID.
func (s *Service) Update(ctx context.Context, r Reminder) error {
	if !r.HasID() {
		return ErrMissingID
	}

	if err := s.store.Put(ctx, s.recordPath(r.ID), r.WithoutID()); err != nil {
		s.log.Error("failed to update reminder", "id", r.ID, "error", err)
		return err
	}

	s.log.Info("reminder updated", "id", r.ID)
	return nil
}

// Delete removes the reminder with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := s.store.Delete(ctx, s.recordPath(id)); err != nil {
		s.log.Error("failed to delete reminder", "id", id, "error", err)
		return err
	}

	s.log.Info("reminder deleted", "id", id)
	return nil
}

// Replace overwrites the whole collection with the given reminders. At most
// one reminder may lack an id.
func (s *Service) Replace(ctx context.Context, reminders []Reminder) error {
	missing := 0
	for _, r := range reminders {
		if !r.HasID() {
			missing++
		}
	}
	if missing > 1 {
		return ErrMissingIDs
	}

	if err := s.store.Put(ctx, s.collection, Encode(reminders)); err != nil {
		s.log.Error("failed to replace reminders", "count", len(reminders), "error", err)
		return err
	}

	s.log.Info("reminders replaced", "count", len(reminders))
	return nil
}

func (s *Service) recordPath(id string) string {
	return s.collection + "/" + url.PathEscape(id)
}
