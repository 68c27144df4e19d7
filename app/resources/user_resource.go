// Package resources defines the API output shapes. Anything not listed in a
// ToArray stays out of the response, which is what keeps password hashes and
// gateway secrets off the wire.
package resources

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/resource"
)

// UserResource is the public shape of an account.
type UserResource struct{ resource.Base }

func (r *UserResource) ToArray(v interface{}) resource.Map {
	u, ok := v.(models.User)
	if !ok {
		return resource.Map{}
	}
	return UserMap(u)
}

// UserMap is the plain-map form, shared with collection responses.
func UserMap(u models.User) resource.Map {
	return resource.Map{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"full_name":  u.FullName,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}
