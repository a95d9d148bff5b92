package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// QueryBuilder emits "?" placeholders; callers rebind them for their driver
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Limit(n int) QueryBuilder
	Build() (string, []interface{})
}

// condition is one clause of an AND-joined WHERE
type condition struct {
	clause string
	args   []interface{}
}

type queryBuilder struct {
	table      string
	cols       []string
	conditions []condition
	values     InsertRows
	updateData UpdateData
	orderBy    []string
	limit      int
	schema     string
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	return q.Where(clause, args...)
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{
		clause: clause,
		args:   args,
	})
	return q
}

func (q *queryBuilder) buildWhere() (string, []interface{}) {
	if len(q.conditions) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.conditions))
	args := make([]interface{}, 0)
	for _, cond := range q.conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case len(q.updateData) > 0:
		return q.buildUpdate()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s.%s", strings.Join(q.cols, ", "), q.schema, q.table)

	where, args := q.buildWhere()
	query += where

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	if q.limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.limit)
	}

	return query, args
}

// buildInsert returns "" when a row does not match the column list
func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ") + ")"
	valueTuples := make([]string, 0, len(q.values))
	args := make([]interface{}, 0, numOfParam*len(q.values))
	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		valueTuples = append(valueTuples, placeholders)
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES %s",
		q.schema, q.table, strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))
	return query, args
}

// buildUpdate emits SET columns in sorted order so the argument order is stable
func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClause := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		setClause = append(setClause, fmt.Sprintf("%s = ?", col))
		args = append(args, q.updateData[col])
	}
	query := fmt.Sprintf("UPDATE %s.%s SET %s", q.schema, q.table, strings.Join(setClause, ", "))

	where, condArgs := q.buildWhere()
	return query + where, append(args, condArgs...)
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}
