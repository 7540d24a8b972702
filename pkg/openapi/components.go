package openapi

import "maps"

// NewComponents returns the schemas and error responses every JSON endpoint
// shares. Errors are always {"error": "..."}.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    errorResponse("Invalid request"),
			"NotFound":      errorResponse("Resource not found"),
			"InternalError": errorResponse("Unexpected server or storage failure"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// PageParams are the query parameters understood by paged list endpoints.
func PageParams() []*Parameter {
	return []*Parameter{
		QueryParam("page", "integer", "Page number (1-indexed)"),
		QueryParam("page_size", "integer", "Results per page"),
		QueryParam("search", "string", "Case-insensitive substring match"),
		QueryParam("sort", "string", "Comma-separated fields, prefix with - for descending"),
	}
}
