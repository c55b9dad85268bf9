package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/planner/pkg/app"
)

const dateHelp = "Date as YYYY-MM-DD, or today, tomorrow or yesterday."

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddItemTool(srv, svc)
	registerUpdateItemTool(srv, svc)
	registerDeleteItemTool(srv, svc)
	registerMoveItemTool(srv, svc)
	registerReorderItemsTool(srv, svc)
	registerToggleCompleteTool(srv, svc)
	registerToggleSubtaskTool(srv, svc)
	registerAddSubtaskTool(srv, svc)
	registerSetMoodTool(srv, svc)
	registerListItemsTool(srv, svc)
	registerGetStatsTool(srv, svc)
}

// patchArgs are the optional item fields shared by add_item and update_item.
func patchArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title",
			mcp.Description("Item title."),
		),
		mcp.WithString("content",
			mcp.Description("Free text body, notes and moods only."),
		),
		mcp.WithString("mood",
			mcp.Description("Mood value such as an emoji, mood items only."),
		),
		mcp.WithString("startTime",
			mcp.Description("Start time as HH:MM, events only."),
		),
		mcp.WithString("endTime",
			mcp.Description("End time as HH:MM, events only."),
		),
	}
}

func registerAddItemTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Add an item to the end of a day."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Kind of item to create."),
			mcp.Enum("todo", "note", "mood", "event"),
		),
		mcp.WithString("date",
			mcp.Description(dateHelp+" Defaults to today."),
		),
	}, patchArgs()...)
	tool := mcp.NewTool("add_item", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
			Kind string `json:"kind"`
			app.Patch
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddItem(ctx, AddItemOptions{Date: args.Date, Kind: args.Kind, Patch: args.Patch})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateItemTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Change fields of an existing item. Fields that do not apply to the item's kind are ignored."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Completion, to-dos only."),
		),
		mcp.WithBoolean("expanded",
			mcp.Description("Whether the item is shown expanded."),
		),
	}, patchArgs()...)
	tool := mcp.NewTool("update_item", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID string `json:"id"`
			app.Patch
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Patch.IsEmpty() {
			return mcp.NewToolResultError("nothing to update"), nil
		}

		dto, err := svc.UpdateItem(ctx, args.ID, args.Patch)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_item",
		mcp.WithDescription("Delete an item."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.DeleteItem(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_item",
		mcp.WithDescription("Move an item to the end of another day."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier to move."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Target "+dateHelp),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := request.RequireString("to")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.MoveItem(ctx, id, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReorderItemsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reorder_items",
		mcp.WithDescription("Move the item at one position of a day to another position."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description(dateHelp),
		),
		mcp.WithNumber("from",
			mcp.Required(),
			mcp.Description("Current zero-based index."),
			mcp.Min(0),
		),
		mcp.WithNumber("to",
			mcp.Required(),
			mcp.Description("Target zero-based index."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		from, err := request.RequireInt("from")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := request.RequireInt("to")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		day, changed, err := svc.ReorderItems(ctx, date, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"date":    day.Date,
			"changed": changed,
			"items":   day.Items,
		})
	})
}

func registerToggleCompleteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_complete",
		mcp.WithDescription("Flip completion of a to-do. Other kinds are left unchanged."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("To-do identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleComplete(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleSubtaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_subtask",
		mcp.WithDescription("Flip completion of one subtask of a to-do."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("To-do identifier."),
		),
		mcp.WithString("subtaskId",
			mcp.Required(),
			mcp.Description("Subtask identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sub, err := request.RequireString("subtaskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleSubtask(ctx, id, sub)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddSubtaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_subtask",
		mcp.WithDescription("Append a subtask to a to-do."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("To-do identifier."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Subtask title."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.AddSubtask(ctx, id, title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetMoodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_mood",
		mcp.WithDescription("Record the mood value of a mood item."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Mood item identifier."),
		),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description("Mood value, usually an emoji."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mood, err := request.RequireString("mood")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.SetMood(ctx, id, mood)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListItemsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_items",
		mcp.WithDescription("List the items of every day in a date range, inclusive."),
		mcp.WithString("from",
			mcp.Description("First "+dateHelp+" Defaults to today."),
		),
		mcp.WithString("to",
			mcp.Description("Last "+dateHelp+" Defaults to from."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from := request.GetString("from", "")
		to := request.GetString("to", "")

		days, err := svc.ListItems(from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count := 0
		for _, d := range days {
			count += len(d.Items)
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": count,
		})
	})
}

func registerGetStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_stats",
		mcp.WithDescription("Summarize item counts and to-do completion for a day, a recent window, or everything."),
		mcp.WithString("date",
			mcp.Description("Summarize a single "+dateHelp),
		),
		mcp.WithString("last",
			mcp.Description("Summarize a window ending today, such as 3d, 2w or 1w3d."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.Stats(request.GetString("date", ""), request.GetString("last", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
