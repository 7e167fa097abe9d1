package middleware

import (
	"context"

	"territorios/backend/app/models"
)

func GetUser(ctx context.Context) *models.Token {
	if v := ctx.Value(UserKey); v != nil {
		if u, ok := v.(*models.Token); ok {
			return u
		}
	}
	return nil
}
