package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
	querybuilder "gitlab.com/fcv-2025.net/submission-judge/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	if schema == "" {
		schema = "public"
	}
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// EnsureTableExists creates the submissions table and its history index
func (r *SubmissionRepository) EnsureTableExists(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s.submissions (
			id UUID PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			problem_id VARCHAR(64) NOT NULL,
			code TEXT NOT NULL,
			language VARCHAR(32) NOT NULL,
			status VARCHAR(64) NOT NULL DEFAULT 'Pending',
			test_cases_passed INTEGER NOT NULL DEFAULT 0,
			test_cases_total INTEGER NOT NULL DEFAULT 0,
			runtime DOUBLE PRECISION NOT NULL DEFAULT 0,
			memory BIGINT NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_user_problem
			ON %[1]s.submissions (user_id, problem_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_submissions_pending
			ON %[1]s.submissions (created_at) WHERE status = 'Pending'
	`, r.schema)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to create submissions table", "error", err)
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}

// Create inserts a new pending submission
func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.GetTableName()).
		Values(
			s.ID, s.UserID, s.ProblemID, s.Code, s.Language, s.Status,
			s.TestCasesPassed, s.TestCasesTotal, s.Runtime, s.Memory,
			s.ErrorMessage, s.CreatedAt, s.UpdatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create submission", "submissionId", s.ID, "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// Finalize moves a pending submission to its verdict in one conditional update
func (r *SubmissionRepository) Finalize(ctx context.Context, id uuid.UUID, verdict domain.Verdict) error {
	if !verdict.Status.IsFinal() {
		return fmt.Errorf("cannot finalize submission %s with status %q", id, verdict.Status)
	}

	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName(), querybuilder.UpdateData{
			tbl.Status:          verdict.Status,
			tbl.TestCasesPassed: verdict.TestCasesPassed,
			tbl.Runtime:         verdict.Runtime,
			tbl.Memory:          verdict.Memory,
			tbl.ErrorMessage:    verdict.ErrorMessage,
			tbl.UpdatedAt:       time.Now().UTC(),
		}).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		And(fmt.Sprintf("%s = ?", tbl.Status), domain.SubmissionStatusPending).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to finalize submission", "submissionId", id, "error", err)
		return fmt.Errorf("failed to finalize submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finalize submission: %w", err)
	}
	if affected == 1 {
		return nil
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	r.logger.Warn("Submission already finalized", "submissionId", id, "status", existing.Status)
	return fmt.Errorf("%w: %s is %s", errs.ErrSubmissionAlreadyFinalized, id, existing.Status)
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var s domain.Submission
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", errs.ErrSubmissionNotFound, id)
		}
		r.logger.Error("Failed to get submission", "submissionId", id, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &s, nil
}

// ListByUserAndProblem returns finalized submissions, newest first
func (r *SubmissionRepository) ListByUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		And(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		And(fmt.Sprintf("%s <> ?", tbl.Status), domain.SubmissionStatusPending).
		OrderBy(tbl.CreatedAt, false).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	submissions := make([]*domain.Submission, 0)
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		r.logger.Error("Failed to list submissions", "userId", userID, "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// ListStalePending returns the oldest pending submissions created before the cutoff
func (r *SubmissionRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.Status), domain.SubmissionStatusPending).
		And(fmt.Sprintf("%s < ?", tbl.CreatedAt), before).
		OrderBy(tbl.CreatedAt, true).
		Limit(limit).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	submissions := make([]*domain.Submission, 0)
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		r.logger.Error("Failed to list stale pending submissions", "error", err)
		return nil, fmt.Errorf("failed to list stale pending submissions: %w", err)
	}
	return submissions, nil
}
