package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/event"
	"github.com/skillswap/skillswap-api/internal/domain/user"
)

// ConnectionChecker reports whether two users share an accepted match
type ConnectionChecker interface {
	HasAcceptedBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// UserSource is the slice of the user repository the session service needs
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service implements session business logic
type Service struct {
	repo        Repository
	connections ConnectionChecker
	users       UserSource
	events      event.Publisher
}

// NewService creates session service
func NewService(repo Repository, connections ConnectionChecker, users UserSource, events event.Publisher) *Service {
	return &Service{repo: repo, connections: connections, users: users, events: events}
}

// Create requests a session with a connected user. The credit price is
// looked up from the fixed table once and frozen on the row.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*Session, error) {
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if participantID == ownerID {
		return nil, ErrSelfSession
	}

	credits, err := CreditsForDuration(req.Duration)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, participantID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	connected, err := s.connections.HasAcceptedBetween(ctx, ownerID, participantID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:            uuid.New(),
		Title:         req.Title,
		OwnerID:       ownerID,
		ParticipantID: participantID,
		Skill:         req.Skill,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		CreditsAmount: credits,
		SessionType:   Type(req.SessionType),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("participant_id", participantID.String()).
		Int("credits", credits).
		Msg("Session requested")

	s.events.Publish(ctx, event.TypeSessionRequested, ownerID, participantID, map[string]any{
		"session_id":     sess.ID.String(),
		"skill":          sess.Skill,
		"session_date":   sess.Date,
		"credits_amount": sess.CreditsAmount,
	})
	return sess, nil
}

// Accept lets the participant confirm a pending session
func (s *Service) Accept(ctx context.Context, id, actorID uuid.UUID) (*Session, error) {
	ok, err := s.repo.AcceptPending(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainDecisionFailure(ctx, id, actorID)
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", id.String()).Str("user_id", actorID.String()).Msg("Session accepted")
	s.events.Publish(ctx, event.TypeSessionAccepted, actorID, sess.OwnerID, map[string]any{
		"session_id": id.String(),
	})
	return sess, nil
}

// Reject lets the participant decline a pending session
func (s *Service) Reject(ctx context.Context, id, actorID uuid.UUID) (*Session, error) {
	ok, err := s.repo.RejectPending(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainDecisionFailure(ctx, id, actorID)
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", id.String()).Str("user_id", actorID.String()).Msg("Session rejected")
	s.events.Publish(ctx, event.TypeSessionRejected, actorID, sess.OwnerID, map[string]any{
		"session_id": id.String(),
	})
	return sess, nil
}

// Cancel calls off a pending session (owner) or a scheduled one (either party)
func (s *Service) Cancel(ctx context.Context, id, actorID uuid.UUID) (*Session, error) {
	ok, err := s.repo.Cancel(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainCancelFailure(ctx, id, actorID)
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", id.String()).Str("user_id", actorID.String()).Msg("Session cancelled")
	s.events.Publish(ctx, event.TypeSessionCancelled, actorID, sess.OtherParty(actorID), map[string]any{
		"session_id": id.String(),
	})
	return sess, nil
}

// Complete settles a scheduled session and moves the credits
func (s *Service) Complete(ctx context.Context, id, actorID uuid.UUID) (*Session, error) {
	sess, err := s.repo.Complete(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	learnerID, teacherID := sess.Parties()
	log.Info().
		Str("session_id", id.String()).
		Str("learner_id", learnerID.String()).
		Str("teacher_id", teacherID.String()).
		Int("credits", sess.CreditsAmount).
		Msg("Session completed")

	s.events.Publish(ctx, event.TypeSessionCompleted, actorID, sess.OtherParty(actorID), map[string]any{
		"session_id": id.String(),
	})
	s.events.Publish(ctx, event.TypeCreditsTransferred, learnerID, teacherID, map[string]any{
		"session_id": id.String(),
		"amount":     sess.CreditsAmount,
	})
	return sess, nil
}

// Rate attaches the one-time rating to a completed session
func (s *Service) Rate(ctx context.Context, id, actorID uuid.UUID, req *RateRequest) (*Session, error) {
	sess, err := s.repo.Rate(ctx, id, actorID, req.Rating, req.Feedback)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", id.String()).
		Str("user_id", actorID.String()).
		Float64("rating", req.Rating).
		Msg("Session rated")

	s.events.Publish(ctx, event.TypeSessionRated, actorID, sess.OtherParty(actorID), map[string]any{
		"session_id": id.String(),
		"rating":     req.Rating,
	})
	return sess, nil
}

// explainDecisionFailure tells apart why accept/reject matched nothing
func (s *Service) explainDecisionFailure(ctx context.Context, id, actorID uuid.UUID) error {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sess.ParticipantID != actorID {
		return ErrNotAuthorized
	}
	return ErrInvalidTransition
}

// explainCancelFailure tells apart why cancel matched nothing
func (s *Service) explainCancelFailure(ctx context.Context, id, actorID uuid.UUID) error {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sess.Involves(actorID) {
		return ErrNotAuthorized
	}
	if sess.Status == StatusPending && sess.OwnerID != actorID {
		return ErrNotAuthorized
	}
	return ErrInvalidTransition
}

// Get returns a session visible to one of its parties
func (s *Service) Get(ctx context.Context, id, actorID uuid.UUID) (*SessionResponse, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	return s.enrich(ctx, sess), nil
}

// List returns the caller's sessions, optionally filtered by status
func (s *Service) List(ctx context.Context, userID uuid.UUID, status Status) ([]*SessionResponse, error) {
	sessions, err := s.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, sessions), nil
}

// ListPendingReceived returns pending sessions awaiting the user's decision
func (s *Service) ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]*SessionResponse, error) {
	sessions, err := s.repo.ListPendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, sessions), nil
}

// ListPendingSent returns pending sessions the user requested
func (s *Service) ListPendingSent(ctx context.Context, userID uuid.UUID) ([]*SessionResponse, error) {
	sessions, err := s.repo.ListPendingSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, sessions), nil
}

// ListScheduled returns upcoming scheduled sessions in chronological order
func (s *Service) ListScheduled(ctx context.Context, userID uuid.UUID) ([]*SessionResponse, error) {
	sessions, err := s.repo.ListScheduled(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, sessions), nil
}

// ListHistory returns completed sessions, most recent first
func (s *Service) ListHistory(ctx context.Context, userID uuid.UUID) ([]*SessionResponse, error) {
	sessions, err := s.repo.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, sessions), nil
}

func (s *Service) enrichAll(ctx context.Context, sessions []Session) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, s.enrich(ctx, &sessions[i]))
	}
	return out
}

func (s *Service) enrich(ctx context.Context, sess *Session) *SessionResponse {
	resp := sess.ToResponse()
	resp.Owner = s.profileOf(ctx, sess.OwnerID)
	resp.Participant = s.profileOf(ctx, sess.ParticipantID)
	return resp
}

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
