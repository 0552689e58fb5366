package match

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/event"
	"github.com/skillswap/skillswap-api/internal/domain/user"
)

// maxCandidates caps the find-matches result
const maxCandidates = 20

// UserSource is the slice of the user repository the match service needs
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	ListOthers(ctx context.Context, id uuid.UUID) ([]user.User, error)
}

// SkillSource exposes declared skill names per user
type SkillSource interface {
	NamesByKind(ctx context.Context, userID uuid.UUID) (teaching, learning []string, err error)
}

// Service implements match business logic
type Service struct {
	repo   Repository
	users  UserSource
	skills SkillSource
	events event.Publisher
}

// NewService creates match service
func NewService(repo Repository, users UserSource, skills SkillSource, events event.Publisher) *Service {
	return &Service{repo: repo, users: users, skills: skills, events: events}
}

// FindMatches scores every other user against the caller and returns the
// best candidates, highest score first. Users already in a pending or
// accepted match with the caller are excluded, as are zero scores.
func (s *Service) FindMatches(ctx context.Context, userID uuid.UUID) ([]Candidate, error) {
	myTeaching, myLearning, err := s.skills.NamesByKind(ctx, userID)
	if err != nil {
		return nil, err
	}

	partnerIDs, err := s.repo.ActivePartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uuid.UUID]struct{}, len(partnerIDs))
	for _, id := range partnerIDs {
		excluded[id] = struct{}{}
	}

	others, err := s.users.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := []Candidate{}
	for i := range others {
		other := &others[i]
		if _, skip := excluded[other.ID]; skip {
			continue
		}

		theirTeaching, theirLearning, err := s.skills.NamesByKind(ctx, other.ID)
		if err != nil {
			return nil, err
		}

		result := ComputeScore(myTeaching, myLearning, theirTeaching, theirLearning)
		if result.Score <= 0 {
			continue
		}

		candidates = append(candidates, Candidate{
			User:         other.ToProfile(),
			Score:        result.Score,
			CommonSkills: result.CommonSkills,
			TheyCanTeach: result.BCanTeachA,
			TheyCanLearn: result.ACanTeachB,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates, nil
}

// Propose creates a pending match toward the recipient. The score and common
// skills are computed once here and frozen on the row.
func (s *Service) Propose(ctx context.Context, requesterID uuid.UUID, req *CreateRequest) (*Match, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if recipientID == requesterID {
		return nil, ErrSelfMatch
	}

	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetActiveBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateMatch
	}

	myTeaching, myLearning, err := s.skills.NamesByKind(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	theirTeaching, theirLearning, err := s.skills.NamesByKind(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	result := ComputeScore(myTeaching, myLearning, theirTeaching, theirLearning)

	now := time.Now().UTC()
	m := &Match{
		ID:           uuid.New(),
		RequesterID:  requesterID,
		RecipientID:  recipientID,
		Score:        result.Score,
		CommonSkills: result.CommonSkills,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// the partial unique index closes the race two concurrent proposals
	// between the same pair would otherwise win together
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", m.ID.String()).
		Str("requester_id", requesterID.String()).
		Str("recipient_id", recipientID.String()).
		Float64("score", m.Score).
		Msg("Match proposed")

	s.events.Publish(ctx, event.TypeMatchProposed, requesterID, recipientID, map[string]any{
		"match_id":      m.ID.String(),
		"match_score":   m.Score,
		"common_skills": []string(m.CommonSkills),
	})
	return m, nil
}

// Accept lets the recipient confirm a pending match
func (s *Service) Accept(ctx context.Context, id, actorID uuid.UUID) (*Match, error) {
	ok, err := s.repo.AcceptPending(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainTransitionFailure(ctx, id, actorID, true)
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Str("user_id", actorID.String()).Msg("Match accepted")
	s.events.Publish(ctx, event.TypeMatchAccepted, actorID, m.RequesterID, map[string]any{
		"match_id": id.String(),
	})
	return m, nil
}

// Reject lets the recipient decline a pending match
func (s *Service) Reject(ctx context.Context, id, actorID uuid.UUID) (*Match, error) {
	ok, err := s.repo.RejectPending(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainTransitionFailure(ctx, id, actorID, true)
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Str("user_id", actorID.String()).Msg("Match rejected")
	s.events.Publish(ctx, event.TypeMatchRejected, actorID, m.RequesterID, map[string]any{
		"match_id": id.String(),
	})
	return m, nil
}

// Cancel lets the requester withdraw a pending match. The row is deleted so
// the pair can be proposed again later.
func (s *Service) Cancel(ctx context.Context, id, actorID uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	recipientID := m.RecipientID

	ok, err := s.repo.DeletePending(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return s.explainTransitionFailure(ctx, id, actorID, false)
	}

	log.Info().Str("match_id", id.String()).Str("user_id", actorID.String()).Msg("Match cancelled")
	s.events.Publish(ctx, event.TypeMatchCancelled, actorID, recipientID, map[string]any{
		"match_id": id.String(),
	})
	return nil
}

// explainTransitionFailure re-reads the row to tell apart the reasons a
// conditional transition matched nothing
func (s *Service) explainTransitionFailure(ctx context.Context, id, actorID uuid.UUID, recipientActs bool) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipientActs && m.RecipientID != actorID {
		return ErrNotAuthorized
	}
	if !recipientActs && m.RequesterID != actorID {
		return ErrNotAuthorized
	}
	return ErrInvalidTransition
}

// Get returns a match visible to one of its parties
func (s *Service) Get(ctx context.Context, id, actorID uuid.UUID) (*MatchResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	return s.enrich(ctx, m), nil
}

// ListMine returns every match the user is a party to
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*MatchResponse, error) {
	matches, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, matches), nil
}

// ListSent returns pending proposals the user initiated
func (s *Service) ListSent(ctx context.Context, userID uuid.UUID) ([]*MatchResponse, error) {
	matches, err := s.repo.ListSentPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, matches), nil
}

// ListReceived returns pending proposals awaiting the user's decision
func (s *Service) ListReceived(ctx context.Context, userID uuid.UUID) ([]*MatchResponse, error) {
	matches, err := s.repo.ListReceivedPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, matches), nil
}

// ListConnections returns accepted matches as the symmetric view from the
// caller's side
func (s *Service) ListConnections(ctx context.Context, userID uuid.UUID) ([]Connection, error) {
	matches, err := s.repo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	connections := []Connection{}
	for i := range matches {
		m := &matches[i]
		profile := s.profileOf(ctx, m.OtherParty(userID))
		common := m.CommonSkills
		if common == nil {
			common = []string{}
		}
		connections = append(connections, Connection{
			MatchID:      m.ID.String(),
			User:         profile,
			Score:        m.Score,
			CommonSkills: common,
			ConnectedAt:  m.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return connections, nil
}

func (s *Service) enrichAll(ctx context.Context, matches []Match) []*MatchResponse {
	out := make([]*MatchResponse, 0, len(matches))
	for i := range matches {
		out = append(out, s.enrich(ctx, &matches[i]))
	}
	return out
}

func (s *Service) enrich(ctx context.Context, m *Match) *MatchResponse {
	resp := m.ToResponse()
	resp.Sender = s.profileOf(ctx, m.RequesterID)
	resp.Recipient = s.profileOf(ctx, m.RecipientID)
	return resp
}

// profileOf resolves a party's public profile; nil when the row is gone
func (s *Service) profileOf(ctx context.Context, id uuid.UUID) *user.Profile {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("Failed to load profile")
		}
		return nil
	}
	return u.ToProfile()
}
