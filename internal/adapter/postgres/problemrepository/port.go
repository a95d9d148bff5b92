package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
	querybuilder "gitlab.com/fcv-2025.net/submission-judge/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository reads problems and their test cases. The tables are owned by the problem service.
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	if schema == "" {
		schema = "public"
	}
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *ProblemRepository) GetProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	problemTbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(problemTbl.ID, problemTbl.Title).
		From(problemTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", problemTbl.ID), problemID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var problem domain.Problem
	if err := r.db.GetContext(ctx, &problem, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", errs.ErrProblemNotFound, problemID)
		}
		r.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	tcTbl := domain.GetTestCaseTable()
	query, args = querybuilder.NewQueryBuilder(r.schema).
		Select(tcTbl.ID, tcTbl.ProblemID, tcTbl.Input, tcTbl.ExpectedOutput, tcTbl.IsHidden, tcTbl.Position).
		From(tcTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tcTbl.ProblemID), problemID).
		OrderBy(tcTbl.Position, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	testCases := make([]*domain.TestCase, 0)
	if err := r.db.SelectContext(ctx, &testCases, query, args...); err != nil {
		r.logger.Error("Failed to get test cases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get test cases: %w", err)
	}
	problem.TestCases = testCases

	return &problem, nil
}
