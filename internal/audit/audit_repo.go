package audit

import (
	"context"
	"database/sql"
	"errors"

	auditerrors "resto-admin/internal/audit/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *AuditEntry) error
	List(ctx context.Context, q ListQuery) ([]AuditEntry, int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create inserts entry inside the bound transaction so it commits together with its outbox event.
func (r *repository) Create(ctx context.Context, entry *AuditEntry) error {
	query := `
INSERT INTO audit_entries (
	id, actor_id, action, resource, resource_id, payload, request_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	var payload any
	if len(entry.Payload) > 0 {
		payload = entry.Payload
	}

	exec, err := r.execer()
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.Resource,
		entry.ResourceID, payload, entry.RequestID, entry.CreatedAt,
	)
	if isUniqueViolation(err) {
		return auditerrors.ErrDuplicateEntry
	}
	return err
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]AuditEntry, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&AuditEntry{}).Scopes(byResource(q.Resource), byActor(q.ActorID))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []AuditEntry
	err := filtered().Scopes(paginate(q.Page, q.PageSize)).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) execer() (interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Migrate creates the audit table and the partial unique index that makes retried requests
// record once.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&AuditEntry{}); err != nil {
		return err
	}
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS uq_audit_request_action
ON audit_entries (request_id, action, resource_id)
WHERE request_id <> ''
`).Error
}
