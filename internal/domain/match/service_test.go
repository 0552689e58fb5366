package match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/event"
	"github.com/skillswap/skillswap-api/internal/domain/user"
)

type repoStub struct {
	matches map[uuid.UUID]*Match
}

func newRepoStub() *repoStub {
	return &repoStub{matches: map[uuid.UUID]*Match{}}
}

func (r *repoStub) Create(_ context.Context, m *Match) error {
	for _, existing := range r.matches {
		if existing.Status != StatusRejected &&
			((existing.RequesterID == m.RequesterID && existing.RecipientID == m.RecipientID) ||
				(existing.RequesterID == m.RecipientID && existing.RecipientID == m.RequesterID)) {
			return ErrDuplicateMatch
		}
	}
	copied := *m
	r.matches[m.ID] = &copied
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *repoStub) AcceptPending(_ context.Context, id, recipientID uuid.UUID) (bool, error) {
	m, ok := r.matches[id]
	if !ok || m.Status != StatusPending || m.RecipientID != recipientID {
		return false, nil
	}
	m.Status = StatusAccepted
	return true, nil
}

func (r *repoStub) RejectPending(_ context.Context, id, recipientID uuid.UUID) (bool, error) {
	m, ok := r.matches[id]
	if !ok || m.Status != StatusPending || m.RecipientID != recipientID {
		return false, nil
	}
	m.Status = StatusRejected
	return true, nil
}

func (r *repoStub) DeletePending(_ context.Context, id, requesterID uuid.UUID) (bool, error) {
	m, ok := r.matches[id]
	if !ok || m.Status != StatusPending || m.RequesterID != requesterID {
		return false, nil
	}
	delete(r.matches, id)
	return true, nil
}

func (r *repoStub) ListByUser(_ context.Context, userID uuid.UUID) ([]Match, error) {
	out := []Match{}
	for _, m := range r.matches {
		if m.Involves(userID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *repoStub) ListSentPending(_ context.Context, userID uuid.UUID) ([]Match, error) {
	out := []Match{}
	for _, m := range r.matches {
		if m.RequesterID == userID && m.Status == StatusPending {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *repoStub) ListReceivedPending(_ context.Context, userID uuid.UUID) ([]Match, error) {
	out := []Match{}
	for _, m := range r.matches {
		if m.RecipientID == userID && m.Status == StatusPending {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *repoStub) ListAccepted(_ context.Context, userID uuid.UUID) ([]Match, error) {
	out := []Match{}
	for _, m := range r.matches {
		if m.Involves(userID) && m.Status == StatusAccepted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *repoStub) GetActiveBetween(_ context.Context, a, b uuid.UUID) (*Match, error) {
	for _, m := range r.matches {
		if m.Status == StatusRejected {
			continue
		}
		if (m.RequesterID == a && m.RecipientID == b) || (m.RequesterID == b && m.RecipientID == a) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *repoStub) HasAcceptedBetween(_ context.Context, a, b uuid.UUID) (bool, error) {
	for _, m := range r.matches {
		if m.Status == StatusAccepted && m.Involves(a) && m.Involves(b) {
			return true, nil
		}
	}
	return false, nil
}

func (r *repoStub) ActivePartnerIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, m := range r.matches {
		if m.Involves(userID) && m.Status != StatusRejected {
			out = append(out, m.OtherParty(userID))
		}
	}
	return out, nil
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

func (u *userSourceStub) ListOthers(_ context.Context, id uuid.UUID) ([]user.User, error) {
	out := []user.User{}
	for _, candidate := range u.users {
		if candidate.ID != id {
			out = append(out, *candidate)
		}
	}
	return out, nil
}

type skillSourceStub struct {
	teaching map[uuid.UUID][]string
	learning map[uuid.UUID][]string
}

func (s *skillSourceStub) NamesByKind(_ context.Context, userID uuid.UUID) ([]string, []string, error) {
	return s.teaching[userID], s.learning[userID], nil
}

type eventsStub struct {
	published []event.Type
}

func (e *eventsStub) Publish(_ context.Context, eventType event.Type, _, _ uuid.UUID, _ any) {
	e.published = append(e.published, eventType)
}

func (e *eventsStub) last() event.Type {
	if len(e.published) == 0 {
		return ""
	}
	return e.published[len(e.published)-1]
}

type fixture struct {
	repo    *repoStub
	users   *userSourceStub
	skills  *skillSourceStub
	events  *eventsStub
	service *Service
}

func newFixture() *fixture {
	repo := newRepoStub()
	users := &userSourceStub{users: map[uuid.UUID]*user.User{}}
	skills := &skillSourceStub{teaching: map[uuid.UUID][]string{}, learning: map[uuid.UUID][]string{}}
	events := &eventsStub{}
	return &fixture{
		repo:    repo,
		users:   users,
		skills:  skills,
		events:  events,
		service: NewService(repo, users, skills, events),
	}
}

func (f *fixture) addUser(teaching, learning []string) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &user.User{ID: id, Email: id.String()[:8] + "@test.com", Name: "u-" + id.String()[:8]}
	f.skills.teaching[id] = teaching
	f.skills.learning[id] = learning
	return id
}

func TestProposeCreatesPendingMatch(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	m, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if m.Status != StatusPending {
		t.Fatalf("expected pending, got %s", m.Status)
	}
	if m.Score != 50 {
		t.Fatalf("expected score 50, got %v", m.Score)
	}
	if f.events.last() != event.TypeMatchProposed {
		t.Fatalf("expected match_proposed event, got %v", f.events.published)
	}
}

func TestProposeSelfMatch(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)

	_, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: alice.String()})
	if !errors.Is(err, ErrSelfMatch) {
		t.Fatalf("expected ErrSelfMatch, got %v", err)
	}
}

func TestProposeUnknownRecipient(t *testing.T) {
	f := newFixture()
	alice := f.addUser(nil, nil)

	_, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: uuid.New().String()})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProposeDuplicateEitherDirection(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	if _, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()}); err != nil {
		t.Fatalf("first propose failed: %v", err)
	}

	_, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})
	if !errors.Is(err, ErrDuplicateMatch) {
		t.Fatalf("expected ErrDuplicateMatch, got %v", err)
	}

	_, err = f.service.Propose(context.Background(), bob, &CreateRequest{RecipientID: alice.String()})
	if !errors.Is(err, ErrDuplicateMatch) {
		t.Fatalf("expected ErrDuplicateMatch on reverse direction, got %v", err)
	}
}

func TestAcceptOnlyRecipient(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	m, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	if _, err := f.service.Accept(context.Background(), m.ID, alice); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for requester accept, got %v", err)
	}

	accepted, err := f.service.Accept(context.Background(), m.ID, bob)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if f.events.last() != event.TypeMatchAccepted {
		t.Fatalf("expected match_accepted event, got %v", f.events.published)
	}
}

func TestAcceptTwiceFails(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	m, _ := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})
	if _, err := f.service.Accept(context.Background(), m.ID, bob); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	if _, err := f.service.Accept(context.Background(), m.ID, bob); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second accept, got %v", err)
	}
}

func TestCancelOnlyRequesterWhilePending(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	m, _ := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})

	if err := f.service.Cancel(context.Background(), m.ID, bob); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for recipient cancel, got %v", err)
	}

	if err := f.service.Cancel(context.Background(), m.ID, alice); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := f.service.Get(context.Background(), m.ID, alice); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected match gone after cancel, got %v", err)
	}

	// the pair can be proposed again
	if _, err := f.service.Propose(context.Background(), bob, &CreateRequest{RecipientID: alice.String()}); err != nil {
		t.Fatalf("re-propose after cancel failed: %v", err)
	}
}

func TestCancelAcceptedMatchFails(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, nil)
	bob := f.addUser(nil, []string{"go"})

	m, _ := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()})
	if _, err := f.service.Accept(context.Background(), m.ID, bob); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if err := f.service.Cancel(context.Background(), m.ID, alice); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestFindMatchesExcludesPartnersAndZeroScores(t *testing.T) {
	f := newFixture()
	alice := f.addUser([]string{"go"}, []string{"piano"})
	bob := f.addUser([]string{"piano"}, []string{"go"})   // strong mutual fit
	carol := f.addUser(nil, []string{"go"})               // one-sided fit
	f.addUser([]string{"yoga"}, []string{"french"})       // no overlap

	candidates, err := f.service.FindMatches(context.Background(), alice)
	if err != nil {
		t.Fatalf("find matches failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].User.ID != bob.String() {
		t.Fatalf("expected best candidate first, got %s", candidates[0].User.ID)
	}
	if candidates[0].Score <= candidates[1].Score {
		t.Fatalf("candidates not sorted by score: %v >= %v expected", candidates[0].Score, candidates[1].Score)
	}

	// once matched, bob disappears from the results
	if _, err := f.service.Propose(context.Background(), alice, &CreateRequest{RecipientID: bob.String()}); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	candidates, err = f.service.FindMatches(context.Background(), alice)
	if err != nil {
		t.Fatalf("find matches failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].User.ID != carol.String() {
		t.Fatalf("expected only carol after matching bob, got %+v", candidates)
	}
}
