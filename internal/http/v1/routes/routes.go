package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/arvela/contactbook/internal/http/v1/contacts"
	"github.com/arvela/contactbook/internal/http/v1/users"
	"github.com/arvela/contactbook/internal/platform/auth"
	contactsvc "github.com/arvela/contactbook/internal/service/contact"
	usersvc "github.com/arvela/contactbook/internal/service/user"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	userService usersvc.Service,
	contactService contactsvc.Service,
) {
	// Auth middleware runs for every operation that declares Security.
	api.UseMiddleware(auth.NewMiddleware(api, verifier))

	users.Register(api, userService)
	contacts.Register(api, contactService)
}
