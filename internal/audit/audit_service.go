package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	auditerrors "resto-admin/internal/audit/errors"
	"resto-admin/internal/events"
	"resto-admin/internal/messaging/kafka"
	"resto-admin/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxPageSize = 100

type Service interface {
	Recorder
	List(ctx context.Context, q ListQuery) (Page, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

// NewService persists entries in db. With a nil outbox no events are queued.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, topic string) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		topic:  topic,
		now:    time.Now,
		logger: zap.L().Named("audit"),
	}
}

func (s *service) Record(ctx context.Context, e Entry) error {
	meta := contextutil.ExtractMetadata(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	var payload []byte
	if e.Payload != nil {
		var err error
		if payload, err = json.Marshal(e.Payload); err != nil {
			return err
		}
	}

	entry := &AuditEntry{
		ID:         uuid.New(),
		ActorID:    meta.UserID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Payload:    payload,
		RequestID:  meta.RequestID,
		CreatedAt:  s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("audit begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		if errors.Is(err, auditerrors.ErrDuplicateEntry) {
			log.Info("audit entry already recorded for request", zap.String("action", e.Action))
			return nil
		}
		log.Error("audit persist failed", zap.String("action", e.Action), zap.Error(err))
		return err
	}

	if s.outbox != nil {
		event := events.AuditRecordedEvent{
			EventType:  events.AuditRecordedType,
			EntryID:    entry.ID.String(),
			RequestID:  entry.RequestID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			Resource:   entry.Resource,
			ResourceID: entry.ResourceID,
			OccurredAt: entry.CreatedAt,
		}
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     entry.RequestID,
			AggregateType: entry.Resource,
			AggregateID:   entry.ResourceID,
			EventType:     event.EventType,
			Topic:         s.topic,
			Payload:       data,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("audit outbox persist failed", zap.String("action", e.Action), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("audit commit failed", zap.Error(err))
		return err
	}

	log.Info("audit recorded",
		zap.String("action", entry.Action),
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID),
	)
	return nil
}

func (s *service) List(ctx context.Context, q ListQuery) (Page, error) {
	q.Resource = strings.TrimSpace(q.Resource)
	q.ActorID = strings.TrimSpace(q.ActorID)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = 20
	}

	entries, total, err := s.repo.List(ctx, q)
	if err != nil {
		return Page{}, err
	}

	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toResponse(e))
	}
	return Page{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}
