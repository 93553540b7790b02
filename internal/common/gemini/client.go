// Package gemini implements the Generator boundary on top of Google's
// Gemini API. Each call sends the rendered prompt plus any file
// attachments and constrains the response to the operation's declared
// output schema.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

type Client struct {
	client      *genai.Client
	model       string
	temperature float64
}

func NewClient(ctx context.Context, cfg config.GenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate issues one blocking request and parses the structured JSON
// response. The response MIME type and schema force the backend to emit
// output matching the declared shape; anything else is a failure.
func (c *Client) Generate(ctx context.Context, req *flows.GenerateRequest) (map[string]interface{}, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, m := range req.Media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(c.temperature)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toResponseSchema(req.Output),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content for %s: %w", req.Operation, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response for %s", req.Operation)
	}

	var output map[string]interface{}
	if err := json.Unmarshal([]byte(text), &output); err != nil {
		return nil, fmt.Errorf("decode response for %s: %w", req.Operation, err)
	}
	return output, nil
}

// toResponseSchema compiles the declared output shape into the backend's
// schema representation.
func toResponseSchema(schema validation.JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
		Required:   schema.Required,
	}
	for name, prop := range schema.Properties {
		out.Properties[name] = toPropertySchema(prop)
	}
	return out
}

func toPropertySchema(prop validation.Property) *genai.Schema {
	s := &genai.Schema{
		Type:        toSchemaType(prop.Type),
		Description: prop.Description,
	}
	if len(prop.Enum) > 0 {
		s.Enum = prop.Enum
	}
	if prop.Nullable {
		s.Nullable = genai.Ptr(true)
	}
	if prop.Items != nil {
		s.Items = toPropertySchema(*prop.Items)
	}
	if len(prop.Properties) > 0 {
		s.Properties = map[string]*genai.Schema{}
		for name, nested := range prop.Properties {
			s.Properties[name] = toPropertySchema(nested)
		}
		s.Required = prop.Required
	}
	return s
}

func toSchemaType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
