package results_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/internal/results"
	"github.com/JaimeStill/flames/pkg/pagination"
	"github.com/JaimeStill/flames/pkg/routes"
)

type mockSystem struct {
	playFn    func(ctx context.Context, cmd results.PlayCommand) (*results.Result, error)
	listFn    func(ctx context.Context, page pagination.PageRequest, filters results.Filters) (*pagination.PageResult[results.Result], error)
	listAllFn func(ctx context.Context) ([]results.Result, error)
	findFn    func(ctx context.Context, id int64) (*results.Result, error)
}

func (m *mockSystem) Handler() *results.Handler {
	return results.NewHandler(m, discard(), testPagination)
}

func (m *mockSystem) Play(ctx context.Context, cmd results.PlayCommand) (*results.Result, error) {
	return m.playFn(ctx, cmd)
}

func (m *mockSystem) Insert(ctx context.Context, r results.Result) (int64, error) {
	return 0, errors.New("not implemented")
}

func (m *mockSystem) ListAll(ctx context.Context) ([]results.Result, error) {
	return m.listAllFn(ctx)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters results.Filters) (*pagination.PageResult[results.Result], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*results.Result, error) {
	return m.findFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	return routes.NewMux(sys.Handler().Routes())
}

func sampleResult() results.Result {
	return results.Result{
		ID:        7,
		Name1:     "John",
		Name2:     "Mary",
		Result:    flames.Affection,
		CreatedAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
}

func TestHandlerPlay(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var captured results.PlayCommand
		sys := &mockSystem{
			playFn: func(_ context.Context, cmd results.PlayCommand) (*results.Result, error) {
				captured = cmd
				r := sampleResult()
				return &r, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/flames", strings.NewReader(`{"name1":"John","name2":"Mary"}`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.Name1 != "John" || captured.Name2 != "Mary" {
			t.Errorf("command = %+v", captured)
		}

		var got results.Result
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != 7 || got.Result != flames.Affection {
			t.Errorf("body = %+v", got)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		sys := &mockSystem{
			playFn: func(_ context.Context, _ results.PlayCommand) (*results.Result, error) {
				return nil, results.ErrMissingName
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/flames", strings.NewReader(`{"name1":"John"}`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		sys := &mockSystem{}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/flames", strings.NewReader(`{`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		sys := &mockSystem{
			playFn: func(_ context.Context, _ results.PlayCommand) (*results.Result, error) {
				return nil, errors.New("database is locked")
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/flames", strings.NewReader(`{"name1":"a","name2":"b"}`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHandlerList(t *testing.T) {
	var (
		capturedPage    pagination.PageRequest
		capturedFilters results.Filters
	)
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters results.Filters) (*pagination.PageResult[results.Result], error) {
			capturedPage, capturedFilters = page, filters
			r := pagination.NewPageResult([]results.Result{sampleResult()}, 1, page.Page, page.PageSize)
			return &r, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/flames?page=2&page_size=5&result=Lovers&search=jo", nil)
	setupMux(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if capturedPage.Page != 2 || capturedPage.PageSize != 5 {
		t.Errorf("page = %+v", capturedPage)
	}
	if capturedPage.Search == nil || *capturedPage.Search != "jo" {
		t.Errorf("search = %v", capturedPage.Search)
	}
	if capturedFilters.Result == nil || *capturedFilters.Result != flames.Lovers {
		t.Errorf("filters = %+v", capturedFilters)
	}

	var got pagination.PageResult[results.Result]
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Data) != 1 || got.Data[0].Name1 != "John" {
		t.Errorf("data = %+v", got.Data)
	}
}

func TestHandlerListAll(t *testing.T) {
	sys := &mockSystem{
		listAllFn: func(_ context.Context) ([]results.Result, error) {
			return []results.Result{}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/flames/all", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id int64) (*results.Result, error) {
			if id != 7 {
				return nil, results.ErrNotFound
			}
			r := sampleResult()
			return &r, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		path string
		want int
	}{
		{"/flames/7", http.StatusOK},
		{"/flames/8", http.StatusNotFound},
		{"/flames/abc", http.StatusBadRequest},
		{"/flames/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{results.ErrMissingName, http.StatusBadRequest},
		{results.ErrNameTooLong, http.StatusBadRequest},
		{results.ErrInvalidID, http.StatusBadRequest},
		{results.ErrNotFound, http.StatusNotFound},
		{results.ErrDuplicate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := results.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	if f := results.FiltersFromQuery(map[string][]string{"result": {"Rivals"}}); f.Result != nil {
		t.Errorf("unknown label kept: %v", *f.Result)
	}
	if f := results.FiltersFromQuery(nil); f.Result != nil {
		t.Error("empty query produced a filter")
	}
}
