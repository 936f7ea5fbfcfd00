package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const shoppingAssistanceText = "You are a helpful shopping assistant. Use the UCP Shopping Service to help " +
	"the user find products in the catalog and guide them through the checkout process. " +
	"Start by asking what they are looking for or show them the available products."

func registerPrompts(srv *mcp.Server) {
	srv.AddPrompt(&mcp.Prompt{
		Name:        "shopping_assistance",
		Description: "A prompt to help users find and buy products.",
	}, func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: "Shopping assistance instructions",
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: shoppingAssistanceText}},
			},
		}, nil
	})
}
