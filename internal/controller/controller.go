package controller

import (
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDParam decodes a hex id path parameter, replying 400 on garbage.
func objectIDParam(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUserID pulls the authenticated user's id from the JWT claims,
// replying 401 when the token is missing or malformed.
func currentUserID(ctx *gin.Context) (primitive.ObjectID, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return primitive.NilObjectID, false
	}
	id, err := claims.UserObjectID()
	if err != nil {
		util.Unauthorized(ctx)
		return primitive.NilObjectID, false
	}
	return id, true
}
