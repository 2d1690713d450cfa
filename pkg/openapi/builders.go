package openapi

const contentJSON = "application/json"

func jsonContent(schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{contentJSON: {Schema: schema}}
}

// SchemaRef points at the component schema name.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef points at the component response name.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSON is a JSON body of the component schema name.
func RequestBodyJSON(name string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: jsonContent(SchemaRef(name))}
}

// ResponseJSON is a JSON response of the component schema name.
func ResponseJSON(description, name string) *Response {
	return &Response{Description: description, Content: jsonContent(SchemaRef(name))}
}

// ErrorResponse is a JSON response carrying the shared Error schema.
func ErrorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

// DataResponse is a JSON response shaped {"data": [items...]}.
func DataResponse(description string, items *Schema) *Response {
	return &Response{
		Description: description,
		Content: jsonContent(&Schema{
			Type:     "object",
			Required: []string{"data"},
			Properties: map[string]*Schema{
				"data": {Type: "array", Items: items},
			},
		}),
	}
}

// PathParam is a required string path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}

// QueryParam is a query string parameter of JSON Schema type typ.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
