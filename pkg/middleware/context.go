package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
	LocationKey contextKey = "location"
)

// Metadata keys set by the API gateway in front of this service.
const (
	HeaderUserID   = "x-user-id"
	HeaderUserRole = "x-user-role"
	HeaderLocation = "x-location"
)

// ContextInterceptor copies the caller identity from incoming metadata onto the context so
// usecases never have to look at transport metadata.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if ok {
			ctx = withFirst(ctx, md, HeaderUserID, UserIDKey)
			ctx = withFirst(ctx, md, HeaderUserRole, UserRoleKey)
			ctx = withFirst(ctx, md, HeaderLocation, LocationKey)
		}
		return handler(ctx, req)
	}
}

func withFirst(ctx context.Context, md metadata.MD, header string, key contextKey) context.Context {
	if vals := md.Get(header); len(vals) > 0 && vals[0] != "" {
		return context.WithValue(ctx, key, vals[0])
	}
	return ctx
}
