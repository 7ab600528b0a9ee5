package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"tourly/infras/otel"
	"tourly/shared/constant"
	"tourly/shared/dto"
	"tourly/shared/failure"
	"tourly/shared/logger"

	"github.com/spf13/cast"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

const (
	countExact = "exact"
	countNone  = ""

	returningMinimal = "minimal"
	returningNone    = ""
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Repository is a typed CRUD gateway over a single backed table. Rows travel
// as JSON through the PostgREST API; T's json tags define the row shape.
type Repository[T any] struct {
	client        *supa.Client
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, client *supa.Client, otl otel.Otel) Repository[T] {
	return Repository[T]{
		client:        client,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	_, _, err := repo.client.From(repo.table).
		Insert(model, false, "", returningMinimal, countNone).
		ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, failure.Gateway(err))
	}

	return nil
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertBulk", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	_, _, err := repo.client.From(repo.table).
		Insert(models, false, "", returningMinimal, countNone).
		ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to bulk insert data (%s): %w", repo.entity, failure.Gateway(err))
	}

	return nil
}

// Get returns the first row matching the filter, or the zero value of T when
// nothing matches. Callers decide whether an empty row is a not-found error.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	var model T

	builder := repo.client.From(repo.table).Select(selectColumns(columns), countNone, false)
	builder = ApplyFilters(builder, filter)

	data, _, err := builder.Limit(1, "").ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entity, failure.Gateway(err))
	}

	var models []T
	if err := json.Unmarshal(data, &models); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to decode row (%s): %w", repo.entity, err)
	}

	if len(models) == 0 {
		return model, nil
	}

	return models[0], nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	builder := repo.client.From(repo.table).Select(selectColumns(columns), countNone, false)
	builder = ApplyFilters(builder, filter)

	if params.SortBy != "" && params.SortDir != "" {
		builder = builder.Order(params.SortBy, &postgrest.OrderOpts{
			Ascending: params.SortDir == dto.SortDirAsc,
		})
	}

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		offset := (page - 1) * limit
		builder = builder.Range(offset, offset+limit-1, "")
	} else if limit > 0 {
		builder = builder.Limit(limit, "")
	}

	data, _, err := builder.ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", repo.entity, failure.Gateway(err))
	}

	var models []T
	if err := json.Unmarshal(data, &models); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode rows (%s): %w", repo.entity, err)
	}

	return models, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	if filter.IsEmpty() {
		return false, errRequiredFilter
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	builder := repo.client.From(repo.table).Select(repo.primaryColumn, countExact, true)
	builder = ApplyFilters(builder, filter)

	_, count, err := builder.ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, failure.Gateway(err))
	}

	return int(count), nil
}

func (repo *Repository[T]) Update(ctx context.Context, patch map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	if filter.IsEmpty() {
		return errRequiredFilter
	}

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	builder := repo.client.From(repo.table).Update(patch, returningMinimal, countNone)
	builder = ApplyFilters(builder, filter)

	_, _, err := builder.ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, failure.Gateway(err))
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	if filter.IsEmpty() {
		return errRequiredFilter
	}

	scope.SetAttribute(constant.OtelTableAttributeKey, repo.table)

	builder := repo.client.From(repo.table).Delete(returningNone, countNone)
	builder = ApplyFilters(builder, filter)

	_, _, err := builder.ExecuteWithContext(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, failure.Gateway(err))
	}

	return nil
}

// ApplyFilters translates the backend-agnostic filter group into PostgREST
// query operators. Unknown operators are dropped silently, matching the
// behavior of an empty where clause.
func ApplyFilters(builder *postgrest.FilterBuilder, filter dto.FilterGroup) *postgrest.FilterBuilder {
	for _, f := range filter.Filters {
		switch f.Operator {
		case dto.FilterOperatorEq:
			builder = builder.Eq(f.Field, cast.ToString(f.Value))
		case dto.FilterOperatorNeq:
			builder = builder.Neq(f.Field, cast.ToString(f.Value))
		case dto.FilterOperatorIlike:
			builder = builder.Ilike(f.Field, "%"+cast.ToString(f.Value)+"%")
		case dto.FilterOperatorIn:
			builder = builder.In(f.Field, cast.ToStringSlice(f.Value))
		case dto.FilterOperatorGte:
			builder = builder.Gte(f.Field, cast.ToString(f.Value))
		case dto.FilterOperatorLte:
			builder = builder.Lte(f.Field, cast.ToString(f.Value))
		case dto.FilterOperatorIs:
			builder = builder.Is(f.Field, cast.ToString(f.Value))
		}
	}

	return builder
}

func selectColumns(columns []string) string {
	if len(columns) == 0 {
		return constant.Asterix
	}

	return strings.Join(columns, ",")
}
