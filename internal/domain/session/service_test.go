package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/event"
	"github.com/skillswap/skillswap-api/internal/domain/user"
)

type repoStub struct {
	sessions map[uuid.UUID]*Session
}

func newRepoStub() *repoStub {
	return &repoStub{sessions: map[uuid.UUID]*Session{}}
}

func (r *repoStub) Create(_ context.Context, s *Session) error {
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *repoStub) AcceptPending(_ context.Context, id, participantID uuid.UUID) (bool, error) {
	s, ok := r.sessions[id]
	if !ok || s.Status != StatusPending || s.ParticipantID != participantID {
		return false, nil
	}
	s.Status = StatusScheduled
	return true, nil
}

func (r *repoStub) RejectPending(_ context.Context, id, participantID uuid.UUID) (bool, error) {
	s, ok := r.sessions[id]
	if !ok || s.Status != StatusPending || s.ParticipantID != participantID {
		return false, nil
	}
	s.Status = StatusRejected
	return true, nil
}

func (r *repoStub) Cancel(_ context.Context, id, actorID uuid.UUID) (bool, error) {
	s, ok := r.sessions[id]
	if !ok {
		return false, nil
	}
	if s.Status == StatusPending && s.OwnerID == actorID {
		s.Status = StatusCancelled
		return true, nil
	}
	if s.Status == StatusScheduled && s.Involves(actorID) {
		s.Status = StatusCancelled
		return true, nil
	}
	return false, nil
}

func (r *repoStub) Complete(_ context.Context, id, actorID uuid.UUID) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	if s.Status != StatusScheduled {
		return nil, ErrInvalidTransition
	}
	s.Status = StatusCompleted
	s.CompletedBy = uuid.NullUUID{UUID: actorID, Valid: true}
	copied := *s
	return &copied, nil
}

func (r *repoStub) Rate(_ context.Context, id, actorID uuid.UUID, rating float64, feedback string) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	if s.Status != StatusCompleted {
		return nil, ErrInvalidTransition
	}
	if s.RatedBy.Valid {
		return nil, ErrAlreadyRated
	}
	if s.CompletedBy.Valid && s.CompletedBy.UUID == actorID {
		return nil, ErrNotAuthorized
	}
	s.Rating = sql.NullFloat64{Float64: rating, Valid: true}
	s.Feedback = sql.NullString{String: feedback, Valid: feedback != ""}
	s.RatedBy = uuid.NullUUID{UUID: actorID, Valid: true}
	copied := *s
	return &copied, nil
}

func (r *repoStub) ListByUser(_ context.Context, userID uuid.UUID, status Status) ([]Session, error) {
	out := []Session{}
	for _, s := range r.sessions {
		if s.Involves(userID) && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *repoStub) ListPendingReceived(_ context.Context, userID uuid.UUID) ([]Session, error) {
	out := []Session{}
	for _, s := range r.sessions {
		if s.ParticipantID == userID && s.Status == StatusPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *repoStub) ListPendingSent(_ context.Context, userID uuid.UUID) ([]Session, error) {
	out := []Session{}
	for _, s := range r.sessions {
		if s.OwnerID == userID && s.Status == StatusPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *repoStub) ListScheduled(_ context.Context, userID uuid.UUID) ([]Session, error) {
	out := []Session{}
	for _, s := range r.sessions {
		if s.Involves(userID) && s.Status == StatusScheduled {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *repoStub) ListHistory(_ context.Context, userID uuid.UUID) ([]Session, error) {
	out := []Session{}
	for _, s := range r.sessions {
		if s.Involves(userID) && s.Status == StatusCompleted {
			out = append(out, *s)
		}
	}
	return out, nil
}

type connectionsStub struct {
	connected map[[2]uuid.UUID]bool
}

func (c *connectionsStub) HasAcceptedBetween(_ context.Context, a, b uuid.UUID) (bool, error) {
	return c.connected[[2]uuid.UUID{a, b}] || c.connected[[2]uuid.UUID{b, a}], nil
}

type userSourceStub struct {
	users map[uuid.UUID]*user.User
}

func (u *userSourceStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	candidate, ok := u.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return candidate, nil
}

type eventsStub struct {
	published []event.Type
}

func (e *eventsStub) Publish(_ context.Context, eventType event.Type, _, _ uuid.UUID, _ any) {
	e.published = append(e.published, eventType)
}

func (e *eventsStub) has(eventType event.Type) bool {
	for _, published := range e.published {
		if published == eventType {
			return true
		}
	}
	return false
}

type fixture struct {
	repo        *repoStub
	connections *connectionsStub
	users       *userSourceStub
	events      *eventsStub
	service     *Service
	owner       uuid.UUID
	participant uuid.UUID
}

func newFixture() *fixture {
	repo := newRepoStub()
	connections := &connectionsStub{connected: map[[2]uuid.UUID]bool{}}
	users := &userSourceStub{users: map[uuid.UUID]*user.User{}}
	events := &eventsStub{}

	f := &fixture{
		repo:        repo,
		connections: connections,
		users:       users,
		events:      events,
		service:     NewService(repo, connections, users, events),
		owner:       uuid.New(),
		participant: uuid.New(),
	}
	for _, id := range []uuid.UUID{f.owner, f.participant} {
		users.users[id] = &user.User{ID: id, Email: id.String()[:8] + "@test.com"}
	}
	connections.connected[[2]uuid.UUID{f.owner, f.participant}] = true
	return f
}

func validRequest(participantID uuid.UUID) *CreateRequest {
	return &CreateRequest{
		Title:         "Intro to Go",
		ParticipantID: participantID.String(),
		Skill:         "Go",
		Date:          "2026-09-15",
		StartTime:     "18:30",
		Duration:      30,
		SessionType:   "teaching",
	}
}

func TestCreateSession(t *testing.T) {
	f := newFixture()

	sess, err := f.service.Create(context.Background(), f.owner, validRequest(f.participant))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sess.Status != StatusPending {
		t.Fatalf("expected pending, got %s", sess.Status)
	}
	if sess.CreditsAmount != 10 {
		t.Fatalf("expected 10 credits for 30 minutes, got %d", sess.CreditsAmount)
	}
	if !f.events.has(event.TypeSessionRequested) {
		t.Fatalf("expected session_requested event, got %v", f.events.published)
	}
}

func TestCreateSessionUnlistedDuration(t *testing.T) {
	f := newFixture()

	req := validRequest(f.participant)
	req.Duration = 45
	if _, err := f.service.Create(context.Background(), f.owner, req); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestCreateSessionWithSelf(t *testing.T) {
	f := newFixture()

	if _, err := f.service.Create(context.Background(), f.owner, validRequest(f.owner)); !errors.Is(err, ErrSelfSession) {
		t.Fatalf("expected ErrSelfSession, got %v", err)
	}
}

func TestCreateSessionNotConnected(t *testing.T) {
	f := newFixture()
	stranger := uuid.New()
	f.users.users[stranger] = &user.User{ID: stranger, Email: "stranger@test.com"}

	if _, err := f.service.Create(context.Background(), f.owner, validRequest(stranger)); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestAcceptOnlyParticipant(t *testing.T) {
	f := newFixture()
	sess, _ := f.service.Create(context.Background(), f.owner, validRequest(f.participant))

	if _, err := f.service.Accept(context.Background(), sess.ID, f.owner); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for owner accept, got %v", err)
	}

	accepted, err := f.service.Accept(context.Background(), sess.ID, f.participant)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s", accepted.Status)
	}
}

func TestCancelPendingOnlyOwner(t *testing.T) {
	f := newFixture()
	sess, _ := f.service.Create(context.Background(), f.owner, validRequest(f.participant))

	if _, err := f.service.Cancel(context.Background(), sess.ID, f.participant); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for participant cancel of pending, got %v", err)
	}
	if _, err := f.service.Cancel(context.Background(), sess.ID, f.owner); err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
}

func TestCancelScheduledEitherParty(t *testing.T) {
	f := newFixture()
	sess, _ := f.service.Create(context.Background(), f.owner, validRequest(f.participant))
	if _, err := f.service.Accept(context.Background(), sess.ID, f.participant); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	cancelled, err := f.service.Cancel(context.Background(), sess.ID, f.participant)
	if err != nil {
		t.Fatalf("participant cancel of scheduled failed: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestCompleteThenRate(t *testing.T) {
	f := newFixture()
	sess, _ := f.service.Create(context.Background(), f.owner, validRequest(f.participant))
	if _, err := f.service.Accept(context.Background(), sess.ID, f.participant); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	completed, err := f.service.Complete(context.Background(), sess.ID, f.owner)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if !f.events.has(event.TypeSessionCompleted) || !f.events.has(event.TypeCreditsTransferred) {
		t.Fatalf("expected completion events, got %v", f.events.published)
	}

	// a second complete loses the status gate
	if _, err := f.service.Complete(context.Background(), sess.ID, f.participant); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second complete, got %v", err)
	}

	// the completing party does not rate
	if _, err := f.service.Rate(context.Background(), sess.ID, f.owner, &RateRequest{Rating: 5}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for completer rating, got %v", err)
	}

	rated, err := f.service.Rate(context.Background(), sess.ID, f.participant, &RateRequest{Rating: 4, Feedback: "great"})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if !rated.Rating.Valid || rated.Rating.Float64 != 4 {
		t.Fatalf("expected rating 4, got %+v", rated.Rating)
	}

	if _, err := f.service.Rate(context.Background(), sess.ID, f.participant, &RateRequest{Rating: 3}); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
}

func TestRateRequiresCompleted(t *testing.T) {
	f := newFixture()
	sess, _ := f.service.Create(context.Background(), f.owner, validRequest(f.participant))

	if _, err := f.service.Rate(context.Background(), sess.ID, f.participant, &RateRequest{Rating: 5}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
