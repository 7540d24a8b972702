package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/flames/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("FLAMES API", "0.1.0")

	if spec.OpenAPI != openapi.Version {
		t.Errorf("openapi = %s, want %s", spec.OpenAPI, openapi.Version)
	}
	if spec.Info.Title != "FLAMES API" || spec.Info.Version != "0.1.0" {
		t.Errorf("info = %+v", spec.Info)
	}
	for _, name := range []string{"BadRequest", "NotFound", "InternalError"} {
		if spec.Components.Responses[name] == nil {
			t.Errorf("missing shared response %s", name)
		}
	}
	if spec.Components.Schemas["Error"] == nil {
		t.Error("missing Error schema")
	}
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("Test", "1")
	get := &openapi.Operation{Summary: "get"}
	post := &openapi.Operation{Summary: "post"}

	if err := spec.AddOperation(http.MethodGet, "/flames", get); err != nil {
		t.Fatalf("add get: %v", err)
	}
	if err := spec.AddOperation(http.MethodPost, "/flames", post); err != nil {
		t.Fatalf("add post: %v", err)
	}
	if err := spec.AddOperation(http.MethodPut, "/flames", &openapi.Operation{}); err == nil {
		t.Error("expected error for PUT")
	}

	item := spec.Paths["/flames"]
	if item.Get != get || item.Post != post {
		t.Errorf("path item = %+v", item)
	}
}

func TestRefs(t *testing.T) {
	if got := openapi.SchemaRef("Result").Ref; got != "#/components/schemas/Result" {
		t.Errorf("schema ref = %s", got)
	}
	if got := openapi.ResponseRef("NotFound").Ref; got != "#/components/responses/NotFound" {
		t.Errorf("response ref = %s", got)
	}
	if arr := openapi.ArrayOf("Result"); arr.Type != "array" || arr.Items.Ref != "#/components/schemas/Result" {
		t.Errorf("array = %+v", arr)
	}

	p := openapi.IntPathParam("id", "Result id")
	if p.In != "path" || !p.Required || p.Schema.Type != "integer" || *p.Schema.Minimum != 1 {
		t.Errorf("path param = %+v", p)
	}
}

func TestHandler(t *testing.T) {
	spec := openapi.NewSpec("Test", "1")
	spec.AddServer("/api")
	spec.AddOperation(http.MethodGet, "/labels", &openapi.Operation{
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Labels", openapi.ArrayOf("Label")),
		},
	})

	handler, err := openapi.Handler(spec)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %s", ct)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	paths := doc["paths"].(map[string]any)
	responses := paths["/labels"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if _, ok := responses["200"]; !ok {
		t.Errorf("responses = %v", responses)
	}
}
