package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openlearnlab/practice-engine/internal/model"
)

const (
	actorContextKey = "practice.actor"
	guestCookieName = "pe_guest"
	guestCookieAge  = 60 * 60 * 24 * 180
)

// ActorMiddleware resolves the request actor. An authenticated user id
// arrives via the X-User-ID header (set by the auth layer in front of this
// service and trusted here); otherwise a guest id is read from, or lazily
// minted into, a long-lived cookie. The engine itself only reads the result.
func ActorMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var actor model.Actor
		if userID := ctx.GetHeader("X-User-ID"); userID != "" {
			actor.UserID = &userID
		} else {
			guestID, err := ctx.Cookie(guestCookieName)
			if err != nil || guestID == "" {
				guestID = uuid.NewString()
				ctx.SetCookie(guestCookieName, guestID, guestCookieAge, "/", "", false, true)
			}
			actor.GuestID = &guestID
		}
		ctx.Set(actorContextKey, actor)
		ctx.Next()
	}
}

// RequestActor returns the actor resolved by ActorMiddleware.
func RequestActor(ctx *gin.Context) model.Actor {
	if v, ok := ctx.Get(actorContextKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}
