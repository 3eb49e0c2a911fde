// Package resource shapes domain entities into API response mappings.
//
// A Resource is anything with a Transform method. For one-off shapes use [New]:
//
//	res := resource.New(user, func(u User) map[string]any {
//	    return map[string]any{
//	        "id":    u.ID,
//	        "name":  u.Name,
//	        "email": resource.When(u.EmailVisible, u.Email),
//	        "avatar": resource.Omit(u.Avatar != "", u.Avatar),
//	    }
//	})
//
// Free functions ([ToArray], [Hide], [Only], [Append]) work on any Resource and
// never modify it. [When] keeps its key and falls back to nil; [Omit] drops
// the key when its condition is false.
//
// Collections keep order and may carry pagination metadata:
//
//	list := resource.NewCollection(resource.Collection(users, NewUserResource)).
//	    WithMeta(total).
//	    Meta("page", page)
package resource
