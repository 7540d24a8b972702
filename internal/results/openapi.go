package results

import (
	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/pkg/openapi"
)

var tags = []string{"Results"}

var docs = struct {
	List    *openapi.Operation
	ListAll *openapi.Operation
	Find    *openapi.Operation
	Play    *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:    "Page through stored results, newest first",
		Tags:       tags,
		Parameters: append(openapi.PageParams(), openapi.QueryParam("result", "string", "Only results with this label")),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("A page of results", openapi.SchemaRef("ResultPage")),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	ListAll: &openapi.Operation{
		Summary: "Every stored result, newest first",
		Tags:    tags,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("All results", openapi.ArrayOf("Result")),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Fetch one stored result",
		Tags:       tags,
		Parameters: []*openapi.Parameter{openapi.IntPathParam("id", "Result id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("The result", openapi.SchemaRef("Result")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Play: &openapi.Operation{
		Summary:     "Compute the FLAMES label for two names and store it",
		Tags:        tags,
		RequestBody: openapi.RequestBodyJSON("PlayCommand"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("The stored result", openapi.SchemaRef("Result")),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
}

// Schemas returns the component schemas referenced by the result endpoints.
func Schemas() map[string]*openapi.Schema {
	minLen := 1
	name := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Description: desc, MinLength: &minLen}
	}

	return map[string]*openapi.Schema{
		"Label": LabelSchema(),
		"PlayCommand": {
			Type:     "object",
			Required: []string{"name1", "name2"},
			Properties: map[string]*openapi.Schema{
				"name1": name("First name"),
				"name2": name("Second name"),
			},
		},
		"Result": {
			Type:     "object",
			Required: []string{"id", "name1", "name2", "result", "created_at"},
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "integer", Format: "int64"},
				"name1":      {Type: "string"},
				"name2":      {Type: "string"},
				"result":     openapi.SchemaRef("Label"),
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"ResultPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Result"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}

// LabelSchema is a string enum of the six labels in FLAMES order.
func LabelSchema() *openapi.Schema {
	labels := flames.Labels()
	enum := make([]any, len(labels))
	for i, l := range labels {
		enum[i] = string(l)
	}
	return &openapi.Schema{Type: "string", Enum: enum}
}
