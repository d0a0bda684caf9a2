package httpadapter

import (
	"context"
	"slices"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
const corsAllowHeaders = "Content-Type,Authorization"

// applyCORSHeaders echoes the request origin when it is allowed. A "*" entry
// allows every origin.
func applyCORSHeaders(ctx *app.RequestContext, allowed []string) {
	origin := strings.TrimSpace(string(ctx.GetHeader("Origin")))
	switch {
	case slices.Contains(allowed, "*"):
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	case origin != "" && slices.Contains(allowed, origin):
		ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
		ctx.Response.Header.Set("Vary", "Origin")
	default:
		return
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware(allowed []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, allowed)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
