// Package mcp provides a Model Context Protocol server for bemanai.
//
// It exposes emotion analysis, relationship decoding, the communication
// sandbox, moderation and chat as MCP tools, and the sandbox skill and
// category listings as MCP resources. The server is served over stdio by
// the beman CLI.
package mcp

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerConfig holds the services exposed as tools.
type ServerConfig struct {
	Emotion    *service.EmotionService
	Decoder    *service.DecoderService
	Sandbox    *service.SandboxService
	Dialogue   *service.DialogueService
	Moderation *service.ModerationService
	Version    string // version string for MCP server info
}

// NewServer creates a configured MCP server with every bemanai tool and resource.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"bemanai",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	// Register tools
	registerAnalyzeTool(s, cfg.Emotion)
	registerDecodeTool(s, cfg.Decoder)
	registerScenariosTool(s, cfg.Sandbox)
	registerSuggestionsTool(s, cfg.Sandbox)
	registerSkillTool(s, cfg.Sandbox)
	registerConflictTool(s, cfg.Sandbox)
	registerTemplateTool(s, cfg.Sandbox)
	registerModerateTool(s, cfg.Moderation)
	registerChatTool(s, cfg.Dialogue)

	// Register resources
	registerSkillsResource(s, cfg.Sandbox)
	registerCategoriesResource(s, cfg.Sandbox)

	return s
}

// --- Tools ---

func registerAnalyzeTool(s *server.MCPServer, svc *service.EmotionService) {
	tool := mcp.NewTool("analyze_emotion",
		mcp.WithDescription("Classify the emotion of a Chinese text as positive, negative or neutral. Returns intensity, per-category scores, matched keywords and suggestions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to analyze (at most 1000 characters)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		return toolResult(svc.Analyze(ctx, text))
	})
}

func registerDecodeTool(s *server.MCPServer, svc *service.DecoderService) {
	tool := mcp.NewTool("decode_relationship",
		mcp.WithDescription("Decode the emotional state and relationship health expressed in a text. Scores communication, trust and support, and returns personalized suggestions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to decode (at most 1000 characters)"),
		),
		mcp.WithString("analysis_type",
			mcp.Description("Which part to return: comprehensive, emotion_only or relationship_only (default: comprehensive)"),
			mcp.Enum(
				string(model.AnalysisComprehensive),
				string(model.AnalysisEmotionOnly),
				string(model.AnalysisRelationOnly),
			),
		),
		mcp.WithString("focus",
			mcp.Description("Relationship dimension whose suggestion is listed first (e.g. 'trust')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		var ctxData map[string]any
		if focus := req.GetString("focus", ""); focus != "" {
			ctxData = map[string]any{service.FocusKey: focus}
		}
		return toolResult(svc.Decode(ctx, text, ctxData, req.GetString("analysis_type", "")))
	})
}

func registerScenariosTool(s *server.MCPServer, svc *service.SandboxService) {
	tool := mcp.NewTool("list_scenarios",
		mcp.WithDescription("List communication practice scenarios, optionally scoped to one category and difficulty."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("category",
			mcp.Description("Scenario category key (e.g. 'relationship_conflict'). Empty = all categories."),
		),
		mcp.WithString("difficulty",
			mcp.Description("Filter by difficulty"),
			mcp.Enum("easy", "medium", "hard"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(svc.Scenarios(req.GetString("category", ""), req.GetString("difficulty", "")))
	})
}

func registerSuggestionsTool(s *server.MCPServer, svc *service.SandboxService) {
	tool := mcp.NewTool("dialogue_suggestions",
		mcp.WithDescription("Analyze what the user would say in a practice scenario and suggest better responses and next steps."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("scenario_id",
			mcp.Required(),
			mcp.Description("Scenario id from list_scenarios (e.g. 'rc_001')"),
		),
		mcp.WithString("user_input",
			mcp.Required(),
			mcp.Description("What the user would say"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scenarioID, err := req.RequireString("scenario_id")
		if err != nil {
			return mcp.NewToolResultError("scenario_id is required"), nil
		}
		input, err := req.RequireString("user_input")
		if err != nil {
			return mcp.NewToolResultError("user_input is required"), nil
		}
		return toolResult(svc.DialogueSuggestions(ctx, scenarioID, input))
	})
}

func registerSkillTool(s *server.MCPServer, svc *service.SandboxService) {
	tool := mcp.NewTool("practice_skill",
		mcp.WithDescription("Get tips and exercises for one communication skill."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("skill_type",
			mcp.Required(),
			mcp.Description("Skill key (e.g. 'active_listening'). See the bemanai://sandbox/skills resource."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		skill, err := req.RequireString("skill_type")
		if err != nil {
			return mcp.NewToolResultError("skill_type is required"), nil
		}
		return toolResult(svc.PracticeSkill(skill))
	})
}

func registerConflictTool(s *server.MCPServer, svc *service.SandboxService) {
	tool := mcp.NewTool("conflict_guide",
		mcp.WithDescription("Get a conflict guide: escalation patterns to avoid, resolution steps and prevention strategies."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("conflict_type",
			mcp.Description("Which guide to return: escalation, resolution or all (default: all)"),
			mcp.Enum(service.ConflictEscalation, service.ConflictResolution, service.ConflictAll),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(svc.ConflictGuide(req.GetString("conflict_type", "")))
	})
}

func registerTemplateTool(s *server.MCPServer, svc *service.SandboxService) {
	tool := mcp.NewTool("dialogue_template",
		mcp.WithDescription("Pick opening, expression, request and closing sentence templates for a situation and emotion."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("situation",
			mcp.Description("Situation in a few words (e.g. '家务分工')"),
		),
		mcp.WithString("emotion",
			mcp.Description("How the user feels (e.g. '失望')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(svc.DialogueTemplate(req.GetString("situation", ""), req.GetString("emotion", "")), nil)
	})
}

func registerModerateTool(s *server.MCPServer, svc *service.ModerationService) {
	tool := mcp.NewTool("moderate_content",
		mcp.WithDescription("Scan a text for sensitive keywords and rate its risk as low, medium, high or extreme."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to moderate (at most 1000 characters)"),
		),
		mcp.WithString("content_type",
			mcp.Description("Kind of content (default: general)"),
			mcp.Enum(service.ContentTypes...),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		return toolResult(svc.Moderate(ctx, text, req.GetString("content_type", "")))
	})
}

func registerChatTool(s *server.MCPServer, svc *service.DialogueService) {
	tool := mcp.NewTool("chat",
		mcp.WithDescription("Reply to one message as a supportive dialogue partner. Returns the reply, its tone and follow-up questions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to answer (at most 200 characters)"),
		),
		mcp.WithString("dialogue_type",
			mcp.Description("Kind of dialogue (default: general)"),
			mcp.Enum("general", "emotional_support", "advice"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError("message is required"), nil
		}
		return toolResult(svc.Chat(ctx, model.ChatRequest{
			Message:      message,
			DialogueType: req.GetString("dialogue_type", ""),
		}))
	})
}

// --- Resources ---

func registerSkillsResource(s *server.MCPServer, svc *service.SandboxService) {
	resource := mcp.NewResource(
		"bemanai://sandbox/skills",
		"Practice Skills",
		mcp.WithResourceDescription("Communication skills with their tip and exercise counts."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, svc.Skills())
	})
}

func registerCategoriesResource(s *server.MCPServer, svc *service.SandboxService) {
	resource := mcp.NewResource(
		"bemanai://sandbox/categories",
		"Scenario Categories",
		mcp.WithResourceDescription("Scenario categories with their names and scenario counts."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, svc.Categories())
	})
}

// toolResult renders a service result as indented JSON, or a service error
// as a tool error tagged with its kind.
func toolResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", service.KindOf(err), service.MessageOf(err))), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
	}, nil
}
