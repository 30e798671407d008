// Package policy decides who may do what, independent of the HTTP layer.
package policy

import "github.com/Fenet-Ab/fen-one-shop/entity"

type Resource string
type Action string

const (
	Cart         Resource = "cart"
	Order        Resource = "order"
	Payment      Resource = "payment"
	Notification Resource = "notification"
	Rating       Resource = "rating"
	Like         Resource = "like"
	Support      Resource = "support"
	Profile      Resource = "profile"
	Category     Resource = "category"
	Material     Resource = "material"
	Users        Resource = "users"
)

const (
	Read   Action = "read"
	Write  Action = "write"
	Manage Action = "manage" // staff-only operations on a resource
)

// catalog resources anyone may browse
var public = map[Resource]bool{
	Category: true,
	Material: true,
	Rating:   true,
}

// Allowed is a pure function of role, resource and action. An empty role is
// an anonymous caller.
func Allowed(role string, res Resource, act Action) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleUser:
		if act == Manage || res == Users {
			return false
		}
		if (res == Category || res == Material) && act == Write {
			return false
		}
		return true
	default:
		return act == Read && public[res]
	}
}
