package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchPoliciesTool defines the search_policies MCP tool.
var searchPoliciesTool = mcp.NewTool("search_policies",
	mcp.WithDescription("Search the ingested HR policy documents semantically. Returns the most relevant policy chunks."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of chunks to return (default 3)"),
	),
)

// askPolicyTool defines the ask_policy MCP tool.
var askPolicyTool = mcp.NewTool("ask_policy",
	mcp.WithDescription("Ask a question about HR policies and get an answer grounded on the ingested policy documents."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The policy question to answer"),
	),
)

// listLeaveRequestsTool defines the list_leave_requests MCP tool.
var listLeaveRequestsTool = mcp.NewTool("list_leave_requests",
	mcp.WithDescription("List leave requests, optionally filtered by status."),
	mcp.WithNumber("user_id",
		mcp.Description("Restrict to one user's requests"),
	),
	mcp.WithString("status",
		mcp.Description("Filter by request status"),
		mcp.Enum("pending", "approved", "rejected"),
	),
)
