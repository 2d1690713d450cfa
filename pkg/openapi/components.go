package openapi

import "maps"

// NewComponents seeds the Error and PageRequest schemas and the error
// responses shared by every operation.
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
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-based page number", Example: 1},
					"page_size": {Type: "integer", Description: "Rows per page", Example: 20},
					"search":    {Type: "string", Description: "Case-insensitive substring"},
					"sort":      {Type: "string", Description: "Comma-separated fields, - prefix for descending, e.g. FullFilepath,-UpdatedAt"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      ErrorResponse("Invalid request"),
			"Unauthorized":    ErrorResponse("Missing or invalid bearer token"),
			"NotFound":        ErrorResponse("Resource not found"),
			"PayloadTooLarge": ErrorResponse("Request body exceeds the configured limit"),
		},
	}
}

// AddSchemas merges schemas, replacing any with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses, replacing any with the same name.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
