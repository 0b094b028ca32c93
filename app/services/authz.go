package services

import (
	"errors"

	jwtutil "carmarket/app/jwt"
	"carmarket/app/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// CanMutate is the single owner-or-admin check shared by every mutating
// operation. The source system repeated this inline per route.
func CanMutate(claims *jwtutil.Claims, ownerID uint) bool {
	if claims == nil {
		return false
	}
	return claims.UserID == ownerID || claims.Role == models.RoleAdmin
}
