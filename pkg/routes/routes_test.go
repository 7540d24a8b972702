package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/flames/pkg/openapi"
	"github.com/JaimeStill/flames/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}
}

func TestRegisterGroup(t *testing.T) {
	mux := routes.NewMux(routes.Group{
		Prefix: "/flames",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: respond("list")},
			{Method: "POST", Pattern: "", Handler: respond("create")},
			{Method: "GET", Pattern: "/{id}", Handler: respond("find")},
		},
	})

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/flames", "list"},
		{"POST", "/flames", "create"},
		{"GET", "/flames/12", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Body.String() != tt.want {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestMethodMismatch(t *testing.T) {
	mux := routes.NewMux(routes.Group{
		Routes: []routes.Route{{Method: "GET", Pattern: "/labels", Handler: respond("labels")}},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/labels", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/v1",
		Children: []routes.Group{
			{
				Prefix: "/flames",
				Routes: []routes.Route{{Method: "GET", Pattern: "/all", Handler: respond("all")}},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/flames/all", nil))

	if rec.Body.String() != "all" {
		t.Errorf("body: got %q, want all", rec.Body.String())
	}
}

func TestExactRootPattern(t *testing.T) {
	mux := routes.NewMux(routes.Group{
		Routes: []routes.Route{{Method: "GET", Pattern: "/{$}", Handler: respond("index")}},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Body.String() != "index" {
		t.Errorf("body: got %q, want index", rec.Body.String())
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	list := &openapi.Operation{Summary: "list"}
	find := &openapi.Operation{Summary: "find"}
	play := &openapi.Operation{Summary: "play"}

	err := routes.Describe(spec,
		routes.Group{
			Prefix: "/flames",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: respond(""), OpenAPI: list},
				{Method: "POST", Pattern: "", Handler: respond(""), OpenAPI: play},
				{Method: "GET", Pattern: "/{id}", Handler: respond(""), OpenAPI: find},
				{Method: "GET", Pattern: "/hidden", Handler: respond("")},
			},
		},
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{$}", Handler: respond(""), OpenAPI: list},
			},
		},
	)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	if item := spec.Paths["/flames"]; item == nil || item.Get != list || item.Post != play {
		t.Errorf("/flames = %+v", item)
	}
	if item := spec.Paths["/flames/{id}"]; item == nil || item.Get != find {
		t.Errorf("/flames/{id} = %+v", item)
	}
	if _, ok := spec.Paths["/flames/hidden"]; ok {
		t.Error("undocumented route should be skipped")
	}
	if _, ok := spec.Paths["/"]; !ok {
		t.Error("exact-match root should be documented as /")
	}
}

func TestDescribeUnsupportedMethod(t *testing.T) {
	err := routes.Describe(openapi.NewSpec("Test", "1.0.0"), routes.Group{
		Routes: []routes.Route{
			{Method: "DELETE", Pattern: "/x", Handler: respond(""), OpenAPI: &openapi.Operation{}},
		},
	})
	if err == nil {
		t.Error("expected error for undocumentable method")
	}
}
