package results

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/pkg/pagination"
	"github.com/JaimeStill/flames/pkg/query"
	"github.com/JaimeStill/flames/pkg/repository"
)

const insertResult = `
	INSERT INTO flames_results(name1, name2, result)
	VALUES ($1, $2, $3)
	RETURNING id, name1, name2, result, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a result repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "results"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Play(ctx context.Context, cmd PlayCommand) (*Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, b := flames.Normalize(cmd.Name1), flames.Normalize(cmd.Name2)
	count := flames.Count(a, b)
	label := flames.Eliminate(count)
	r.logger.Debug("flames resolved", "count", count, "result", label)

	return r.insert(ctx, Result{
		Name1:  cmd.Name1,
		Name2:  cmd.Name2,
		Result: label,
	})
}

func (r *repo) Insert(ctx context.Context, res Result) (int64, error) {
	stored, err := r.insert(ctx, res)
	if err != nil {
		return 0, err
	}
	return stored.ID, nil
}

func (r *repo) insert(ctx context.Context, res Result) (*Result, error) {
	if !res.Result.Valid() {
		return nil, fmt.Errorf("insert result: invalid label %q", res.Result)
	}

	args := []any{res.Name1, res.Name2, string(res.Result)}

	stored, err := repository.QueryOne(ctx, r.db, insertResult, args, scanResult)
	if err != nil {
		if repository.IsValueTooLong(err) {
			return nil, fmt.Errorf("insert result: %w", ErrNameTooLong)
		}
		return nil, fmt.Errorf("insert result: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	r.logger.Info("result recorded", "id", stored.ID, "result", stored.Result)
	return &stored, nil
}

func (r *repo) ListAll(ctx context.Context) ([]Result, error) {
	q, args := query.NewBuilder(projection, newestFirst).Build()

	all, err := repository.QueryMany(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return all, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Result], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, newestFirst).
		WhereSearch(page.Search, "Name1", "Name2")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var (
		total int
		data  []Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := repository.Count(gctx, r.db, countSQL, countArgs)
		if err != nil {
			return fmt.Errorf("count results: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanResult)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		data = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Result, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	res, err := repository.QueryOne(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &res, nil
}
