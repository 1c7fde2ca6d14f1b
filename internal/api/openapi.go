package api

import (
	"github.com/haven-app/haven/internal/config"
	"github.com/haven-app/haven/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the rule set and risk endpoints.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	addRuleSetPaths(spec)
	addRiskPaths(spec)

	return spec
}

func schemas() map[string]*openapi.Schema {
	zero := 0.0
	one := 1.0

	return map[string]*openapi.Schema{
		"RuleSet": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"name":           {Type: "string"},
				"version":        {Type: "integer"},
				"weights":        {Type: "object", Description: "Feature name to weight"},
				"warn_threshold": {Type: "number", Minimum: &zero, Maximum: &one},
				"high_threshold": {Type: "number", Minimum: &zero, Maximum: &one},
				"description":    {Type: "string"},
				"active":         {Type: "boolean"},
				"created_at":     {Type: "string", Format: "date-time"},
			},
		},
		"RuleSetCreate": {
			Type:     "object",
			Required: []string{"name", "weights", "warn_threshold", "high_threshold"},
			Properties: map[string]*openapi.Schema{
				"name":           {Type: "string"},
				"weights":        {Type: "object", Description: "Feature name to weight"},
				"warn_threshold": {Type: "number", Minimum: &zero, Maximum: &one},
				"high_threshold": {Type: "number", Minimum: &zero, Maximum: &one},
				"description":    {Type: "string"},
			},
		},
		"Evaluation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"assessment":  openapi.SchemaRef("Assessment"),
				"rule_set_id": {Type: "string", Format: "uuid"},
				"snapshot_id": {Type: "string", Format: "uuid"},
				"warnings":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Assessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"score": {Type: "number", Minimum: &zero, Maximum: &one},
				"level": {Type: "string", Enum: []any{"low", "warn", "high"}},
				"reasons": {
					Type:        "array",
					Description: "Material feature names, largest contribution first",
					Items:       &openapi.Schema{Type: "string"},
				},
				"feature_scores": {Type: "object", Description: "Normalized feature values"},
				"weights":        {Type: "object", Description: "Feature name to weight"},
				"thresholds":     openapi.SchemaRef("Thresholds"),
				"timestamp":      {Type: "string", Format: "date-time"},
			},
		},
		"Thresholds": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"warn": {Type: "number", Minimum: &zero, Maximum: &one},
				"high": {Type: "number", Minimum: &zero, Maximum: &one},
			},
		},
		"EvaluateRequest": {
			Type:     "object",
			Required: []string{"user_id"},
			Properties: map[string]*openapi.Schema{
				"user_id":  {Type: "string", Format: "uuid"},
				"features": {Type: "object", Description: "Explicit feature values"},
				"signals":  {Type: "object", Description: "Raw signals to extract features from"},
				"persist":  {Type: "boolean", Description: "Record the assessment as a snapshot"},
			},
		},
		"Snapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"user_id":        {Type: "string", Format: "uuid"},
				"rule_set_id":    {Type: "string", Format: "uuid"},
				"score":          {Type: "number", Minimum: &zero, Maximum: &one},
				"level":          {Type: "string", Enum: []any{"low", "warn", "high"}},
				"reasons":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"feature_scores": {Type: "object"},
				"weights":        {Type: "object"},
				"thresholds":     openapi.SchemaRef("Thresholds"),
				"created_at":     {Type: "string", Format: "date-time"},
			},
		},
		"ChangeReport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"has_previous":     {Type: "boolean"},
				"score_change":     {Type: "number"},
				"level_change":     {Type: "string", Enum: []any{"low", "warn", "high"}},
				"new_reasons":      {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"resolved_reasons": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"feature_changes": {
					Type:        "object",
					Description: "FeatureDelta values keyed by feature name; zero deltas omitted",
				},
			},
		},
		"FeatureDelta": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"old":    {Type: "number"},
				"new":    {Type: "number"},
				"change": {Type: "number"},
			},
		},
		"HistoryPoint": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"timestamp": {Type: "string", Format: "date-time"},
				"score":     {Type: "number", Minimum: &zero, Maximum: &one},
				"level":     {Type: "string", Enum: []any{"low", "warn", "high"}},
			},
		},
	}
}

func addRuleSetPaths(spec *openapi.Spec) {
	tags := []string{"rules"}

	spec.Paths["/rules"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List rule sets",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search name and description", false),
				openapi.QueryParam("active", "boolean", "Filter by active state", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated rule sets", "RuleSet"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a rule set",
			Description: "Creates the next version of the named rule set. The new version is not active until activated.",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("RuleSetCreate", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created rule set", "RuleSet"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/rules/active"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get the active rule set",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Active rule set", "RuleSet"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/rules/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a rule set",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Rule set ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Rule set", "RuleSet"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:     "Delete a rule set",
			Description: "Active rule sets cannot be deleted.",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Rule set ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/rules/{id}/activate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Activate a rule set",
			Description: "Deactivates any currently active rule set first.",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Rule set ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Activated rule set", "RuleSet"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/rules/{id}/deactivate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Deactivate a rule set",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Rule set ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Deactivated rule set", "RuleSet"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/rules/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search rule sets",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated rule sets", "RuleSet"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addRiskPaths(spec *openapi.Spec) {
	tags := []string{"risk"}
	user := openapi.QueryParam("user_id", "string", "User ID", true)

	spec.Paths["/risk"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get the latest risk snapshot for a user",
			Tags:       tags,
			Parameters: []*openapi.Parameter{user},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Latest snapshot", "Snapshot"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/risk/evaluate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Evaluate risk for a user",
			Description: "Scores the given features against the active rule set, optionally persisting a snapshot.",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("EvaluateRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Evaluation result", "Evaluation"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/risk/changes"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Compare the two most recent snapshots for a user",
			Tags:       tags,
			Parameters: []*openapi.Parameter{user},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Change report", "ChangeReport"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/risk/history"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get score history for a user",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				user,
				openapi.QueryParam("days", "integer", "Window in days (1-365)", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("History points", "HistoryPoint"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/risk/snapshots"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List snapshots",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("user_id", "string", "Filter by user", false),
				openapi.QueryParam("level", "string", "Filter by risk level", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated snapshots", "Snapshot"),
			},
		},
	}

	spec.Paths["/risk/snapshots/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a snapshot",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Snapshot ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Snapshot", "Snapshot"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/risk/snapshots/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search snapshots",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated snapshots", "Snapshot"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}
