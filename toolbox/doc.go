// Package toolbox dispatches tool calls by ID to in-process handlers.
//
// A Box owns one namespace. Tool IDs take the form "namespace:name"; a bare
// name is resolved in the box's own namespace. Handlers receive decoded JSON
// arguments and return any JSON-encodable value.
//
// # Usage
//
//	box := toolbox.New("codelab")
//	_ = box.Register("echo", func(ctx context.Context, args map[string]any) (any, error) {
//	    return toolbox.String(args, "message")
//	})
//	out, err := box.Call(ctx, "codelab:echo", map[string]any{"message": "hi"})
//
// Tools can be switched off without unregistering them:
//
//	_ = box.SetEnabled("run", false)
//	_, err = box.Call(ctx, "codelab:run", args) // ErrToolDisabled
package toolbox
