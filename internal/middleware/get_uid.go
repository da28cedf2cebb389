package middleware

import (
	"oneasy-portal/internal/services"
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UIDObjectID reads the user id JWTAuth stored and converts it to an ObjectID.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, ok := c.Locals(LocalUserID).(string)
	if !ok || uid == "" {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}

func RoleFrom(c *fiber.Ctx) viewmode.Role {
	role, _ := c.Locals(LocalRole).(viewmode.Role)
	return role
}

// ActorFrom builds the service-layer caller from Locals.
func ActorFrom(c *fiber.Ctx) (services.Actor, error) {
	oid, err := UIDObjectID(c)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{UserID: oid, Role: RoleFrom(c)}, nil
}
