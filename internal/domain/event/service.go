package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel is the Redis pub/sub channel the notifier subscribes to.
const Channel = "skillswap:events"

// Publisher is the surface domain services emit through.
type Publisher interface {
	Publish(ctx context.Context, eventType Type, actorID, subjectID uuid.UUID, payload any)
}

// Service appends events to the outbox and fans them out over Redis.
// Emission is fire-and-forget: failures are logged, never returned, because
// no lifecycle operation may depend on downstream consumption.
type Service struct {
	repo  *Repository
	redis *redis.Client // nil when Redis is not configured
}

// NewService creates event service
func NewService(repo *Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

// Publish records and broadcasts a lifecycle event
func (s *Service) Publish(ctx context.Context, eventType Type, actorID, subjectID uuid.UUID, payload any) {
	e := &Event{
		ID:        uuid.New(),
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}
	if actorID != uuid.Nil {
		e.ActorID = uuid.NullUUID{UUID: actorID, Valid: true}
	}
	if subjectID != uuid.Nil {
		e.SubjectID = uuid.NullUUID{UUID: subjectID, Valid: true}
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("event_type", string(eventType)).Msg("Failed to encode event payload")
		} else {
			e.Payload = data
		}
	}

	if err := s.repo.Append(ctx, e); err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("Failed to append event")
		return
	}

	if s.redis == nil {
		return
	}

	msg, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("Failed to encode event")
		return
	}
	if err := s.redis.Publish(ctx, Channel, msg).Err(); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to publish event")
	}
}
