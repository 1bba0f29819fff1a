package auth

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-stock-ledger/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

// AllLocations is the scope of an actor that may see every site.
const AllLocations = "all"

type UserContext struct {
	UserID   string
	Role     string
	Location string
}

// FromContext returns the acting user, preferring values placed by the interceptor and
// falling back to raw metadata. An actor with no location is scoped to every site.
func FromContext(ctx context.Context) UserContext {
	uc := UserContext{
		UserID:   lookup(ctx, middleware.UserIDKey, middleware.HeaderUserID),
		Role:     lookup(ctx, middleware.UserRoleKey, middleware.HeaderUserRole),
		Location: lookup(ctx, middleware.LocationKey, middleware.HeaderLocation),
	}
	if uc.Location == "" {
		uc.Location = AllLocations
	}
	return uc
}

// FromRequest reads the same identity from HTTP headers.
func FromRequest(r *http.Request) UserContext {
	uc := UserContext{
		UserID:   r.Header.Get(middleware.HeaderUserID),
		Role:     r.Header.Get(middleware.HeaderUserRole),
		Location: r.Header.Get(middleware.HeaderLocation),
	}
	if uc.Location == "" {
		uc.Location = AllLocations
	}
	return uc
}

func lookup(ctx context.Context, key interface{}, header string) string {
	if val, ok := ctx.Value(key).(string); ok && val != "" {
		return val
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(header); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// CanAccess reports whether the actor may read or act on an entity tagged with location.
func (u UserContext) CanAccess(location string) bool {
	return u.Location == AllLocations || u.Location == location
}

// Scope narrows a requested location filter to what the actor is allowed to see.
func (u UserContext) Scope(requested string) string {
	if u.Location != AllLocations {
		return u.Location
	}
	if requested == "" {
		return AllLocations
	}
	return requested
}

// Actor is the identity recorded on movements and orders.
func (u UserContext) Actor() string {
	if u.UserID == "" {
		return "system"
	}
	return u.UserID
}
