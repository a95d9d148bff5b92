package submissionrepository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

func newMockRepo(t *testing.T) (*SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewSubmissionRepository(sqlx.NewDb(db, "postgres"), logging.NewNop(), "public"), mock
}

func submissionRows(subs ...*domain.Submission) *sqlmock.Rows {
	rows := sqlmock.NewRows(domain.GetSubmissionTable().Columns())
	for _, s := range subs {
		rows.AddRow(s.ID.String(), s.UserID, s.ProblemID, s.Code, s.Language, string(s.Status),
			s.TestCasesPassed, s.TestCasesTotal, s.Runtime, s.Memory, s.ErrorMessage, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	s := domain.NewPendingSubmission("u1", "p1", "print(1)", "python", 4)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.submissions (id, user_id, problem_id")).
		WithArgs(s.ID, "u1", "p1", "print(1)", "python", "Pending", 0, 4, 0.0, int64(0), "", s.CreatedAt, s.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalize(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	verdict := domain.Verdict{Status: domain.SubmissionStatusWrongAnswer, TestCasesPassed: 2, Runtime: 0.3, Memory: 200, ErrorMessage: "diff"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE public.submissions SET error_message = $1, memory = $2, runtime = $3, status = $4, test_cases_passed = $5, updated_at = $6 WHERE id = $7 AND status = $8")).
		WithArgs("diff", int64(200), 0.3, "Wrong Answer", 2, sqlmock.AnyArg(), id, "Pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Finalize(context.Background(), id, verdict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalizeTwiceIsRejected(t *testing.T) {
	repo, mock := newMockRepo(t)
	done := domain.NewPendingSubmission("u1", "p1", "x", "c", 1)
	done.Status = domain.SubmissionStatusAccepted

	mock.ExpectExec(regexp.QuoteMeta("UPDATE public.submissions SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, problem_id")).
		WithArgs(done.ID).
		WillReturnRows(submissionRows(done))

	err := repo.Finalize(context.Background(), done.ID, domain.Verdict{Status: domain.SubmissionStatusInternalError})
	if !errors.Is(err, errs.ErrSubmissionAlreadyFinalized) {
		t.Fatalf("expected already finalized, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalizeUnknownSubmission(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE public.submissions SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(domain.GetSubmissionTable().Columns()))

	err := repo.Finalize(context.Background(), id, domain.Verdict{Status: domain.SubmissionStatusAccepted})
	if !errors.Is(err, errs.ErrSubmissionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFinalizeRejectsPendingVerdict(t *testing.T) {
	repo, mock := newMockRepo(t)

	err := repo.Finalize(context.Background(), uuid.New(), domain.Verdict{Status: domain.SubmissionStatusPending})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestListByUserAndProblem(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := domain.NewPendingSubmission("u1", "p1", "b", "c", 2)
	newer.Status = domain.SubmissionStatusAccepted
	older := domain.NewPendingSubmission("u1", "p1", "a", "c", 2)
	older.Status = domain.SubmissionStatusWrongAnswer
	older.CreatedAt = newer.CreatedAt.Add(-time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("FROM public.submissions WHERE user_id = $1 AND problem_id = $2 AND status <> $3 ORDER BY created_at DESC")).
		WithArgs("u1", "p1", "Pending").
		WillReturnRows(submissionRows(newer, older))

	got, err := repo.ListByUserAndProblem(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].Status != domain.SubmissionStatusWrongAnswer {
		t.Fatalf("unexpected submissions: %+v", got)
	}
}

func TestListStalePending(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Now().Add(-2 * time.Minute)
	stale := domain.NewPendingSubmission("u1", "p1", "a", "c", 1)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND created_at < $2 ORDER BY created_at ASC LIMIT $3")).
		WithArgs("Pending", cutoff, 50).
		WillReturnRows(submissionRows(stale))

	got, err := repo.ListStalePending(context.Background(), cutoff, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Status != domain.SubmissionStatusPending {
		t.Fatalf("unexpected submissions: %+v", got)
	}
}

func TestEnsureTableExists(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS public.submissions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureTableExists(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
