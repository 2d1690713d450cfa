package api

import (
	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/pkg/openapi"
)

// NewSpec describes the root API as an OpenAPI 3.1 document.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.New(cfg.API.OpenAPI, cfg.Version)
	spec.Components.AddSchemas(schemas())
	spec.Components.AddResponses(map[string]*openapi.Response{
		"ServerError": openapi.ErrorResponse("Storage fault; the write was rolled back"),
	})
	names := &openapi.Schema{Type: "string"}

	issuer := openapi.QueryParam("classification_issuer", "string", "Annotator identity", false)
	user := openapi.QueryParam("user", "string", "Annotator identity (alias)", false)

	spec.AddOperation("GET", "/", &openapi.Operation{
		Summary:     "Fetch work",
		Description: "Returns every catalog item the annotator has not resolved, restricted to their assignments when they have any, in random order. Empty when no annotator is given.",
		Tags:        []string{"Work"},
		Parameters:  []*openapi.Parameter{issuer, user},
		Responses: map[int]*openapi.Response{
			200: openapi.DataResponse("Eligible work items", openapi.SchemaRef("WorkItem")),
		},
	})

	spec.AddOperation("POST", "/update_classification", &openapi.Operation{
		Summary:     "Submit a classification",
		Description: "Inserts or overwrites the judgment for (classification_issuer, filepath).",
		Tags:        []string{"Classifications"},
		RequestBody: openapi.RequestBodyJSON("UpsertCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Judgment recorded", "UpdateResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("ServerError"),
		},
	})

	spec.AddOperation("GET", "/classifications", &openapi.Operation{
		Summary: "List classifications",
		Tags:    []string{"Classifications"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search filepath and notes", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -UpdatedAt", false),
			openapi.QueryParam("classification_issuer", "string", "Exact issuer", false),
			openapi.QueryParam("filepath", "string", "Filepath contains", false),
			openapi.QueryParam("label", "string", "ad, not-ad, or unresolved", false),
			openapi.QueryParam("flag_issue", "boolean", "Flagged rows only", false),
			openapi.QueryParam("is_ad_marker", "boolean", "Ad marker rows only", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of classifications", "ClassificationPage"),
		},
	})

	spec.AddOperation("GET", "/results", &openapi.Operation{
		Summary:     "Resolved-label report",
		Description: "Resolved judgments on assigned items, ordered by filepath then issuer.",
		Tags:        []string{"Results"},
		Responses: map[int]*openapi.Response{
			200: openapi.DataResponse("Report rows", openapi.SchemaRef("Result")),
		},
	})

	spec.AddOperation("GET", "/stats", &openapi.Operation{
		Summary: "Summary counts",
		Tags:    []string{"Results"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Counts", "Stats"),
		},
	})

	spec.AddOperation("GET", "/user_options", &openapi.Operation{
		Summary: "Known annotators",
		Tags:    []string{"Annotators"},
		Responses: map[int]*openapi.Response{
			200: openapi.DataResponse("Annotator names, ascending", names),
		},
	})

	spec.AddOperation("GET", "/assignments/{annotator}", &openapi.Operation{
		Summary: "Assigned filepaths",
		Tags:    []string{"Assignments"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("annotator", "Annotator identity"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.DataResponse("Filepaths, ascending", names),
			400: openapi.ResponseRef("BadRequest"),
		},
	})

	if cfg.Auth.Enabled {
		spec.Operations(func(op *openapi.Operation) {
			op.Responses[401] = openapi.ResponseRef("Unauthorized")
		})
	}

	return spec
}

func schemas() map[string]*openapi.Schema {
	str := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Description: desc}
	}
	label := &openapi.Schema{
		Type:        "integer",
		Description: "1 = ad, 0 = not-ad, null = unresolved",
		Enum:        []any{1, 0, nil},
	}

	return map[string]*openapi.Schema{
		"WorkItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer"},
				"full_filepath":   str("Item identity"),
				"extracted_text":  str("Text extracted from the image"),
				"script":          str("Script or language tag"),
				"referrer":        str("Referrer URL"),
				"screenshot_path": str("Screenshot location"),
				"recording_path":  str("Recording location"),
			},
		},
		"UpsertCommand": {
			Type:     "object",
			Required: []string{"classification", "filepath"},
			Properties: map[string]*openapi.Schema{
				"classification": {
					Description: "1, 0, -1, true, false, \"ad\", \"not-ad\", or \"unresolved\"",
					Example:     1,
				},
				"filepath":              str("Item identity"),
				"classification_issuer": str("Annotator; defaults to the configured default annotator"),
				"flag_issue":            {Type: "boolean", Default: false},
				"notes":                 str("Free-text notes"),
				"is_ad_marker":          {Type: "boolean", Default: false},
			},
		},
		"UpdateResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean", Example: true},
				"updated": {Type: "integer", Example: 1},
			},
		},
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                     {Type: "string", Format: "uuid"},
				"classification_issuer":  str("Annotator"),
				"full_filepath":          str("Item identity"),
				"is_suspected_ad_manual": label,
				"flag_issue":             {Type: "boolean"},
				"notes":                  str("Free-text notes"),
				"is_ad_marker":           {Type: "boolean"},
				"created_at":             {Type: "string", Format: "date-time"},
				"updated_at":             {Type: "string", Format: "date-time"},
			},
		},
		"ClassificationPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Classification")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"full_filepath":          str("Item identity"),
				"is_suspected_ad_manual": {Type: "integer", Enum: []any{1, 0}},
				"classification_issuer":  str("Annotator"),
			},
		},
		"Stats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"items":           {Type: "integer"},
				"classifications": {Type: "integer"},
				"resolved":        {Type: "integer"},
				"flagged":         {Type: "integer"},
				"annotators":      {Type: "integer"},
				"assignments":     {Type: "integer"},
			},
		},
	}
}
