package contacts

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arvela/contactbook/internal/platform/auth"
	contactsvc "github.com/arvela/contactbook/internal/service/contact"
	usersvc "github.com/arvela/contactbook/internal/service/user"
)

// Register registers contact endpoints. All of them require a bearer token;
// the caller's resolved user is the only owner they can act for.
func Register(api huma.API, svc contactsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-contact",
		Method:        http.MethodPost,
		Path:          "/contacts",
		Summary:       "Create a contact",
		Description:   "Creates a contact owned by the authenticated caller. The owner cannot be supplied by the client.",
		Tags:          []string{"Contacts"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactCreateInput) (*ContactCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := svc.Create(ctx, user.UID, contactsvc.CreateParams{
			Name:         input.Body.Name,
			PhoneNumbers: input.Body.PhoneNumbers,
			Emails:       input.Body.Emails,
			Addresses:    toServiceAddresses(input.Body.Addresses),
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ContactCreateOutput{
			Location: "/api/contacts/" + c.ID,
			Body:     toHTTPContact(c),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-contacts",
		Method:      http.MethodGet,
		Path:        "/contacts",
		Summary:     "List the caller's contacts",
		Description: "Returns every contact owned by the authenticated caller, ordered by name.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ContactListInput) (*ContactListOutput, error) {
		user := auth.UserFromContext(ctx)

		list, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := make([]Contact, 0, len(list))
		for _, c := range list {
			out = append(out, toHTTPContact(c))
		}
		return &ContactListOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-contact",
		Method:      http.MethodGet,
		Path:        "/contacts/{id}",
		Summary:     "Get one contact",
		Description: "Retrieves a contact by id if the authenticated caller owns it.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactGetInput) (*ContactGetOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := svc.Get(ctx, input.ID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ContactGetOutput{Body: toHTTPContact(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-contact",
		Method:      http.MethodPatch,
		Path:        "/contacts/{id}",
		Summary:     "Update a contact",
		Description: "Merges the supplied fields onto the stored contact. A supplied mapping replaces the stored mapping wholesale; omitted fields are left untouched.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactUpdateInput) (*ContactUpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := svc.Update(ctx, input.ID, user.UID, contactsvc.UpdateParams{
			Name:         input.Body.Name,
			PhoneNumbers: input.Body.PhoneNumbers,
			Emails:       input.Body.Emails,
			Addresses:    toServiceAddresses(input.Body.Addresses),
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ContactUpdateOutput{Body: toHTTPContact(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-contact",
		Method:        http.MethodDelete,
		Path:          "/contacts/{id}",
		Summary:       "Delete a contact",
		Description:   "Deletes a contact by id if the authenticated caller owns it.",
		Tags:          []string{"Contacts"},
		DefaultStatus: http.StatusOK,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, input.ID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, contactsvc.ErrNotFound):
		return huma.Error404NotFound("contact not found")
	case errors.Is(err, usersvc.ErrNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, contactsvc.ErrNotOwner):
		return huma.Error400BadRequest("contact belongs to another user")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPContact(c *contactsvc.Contact) Contact {
	out := Contact{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumbers: c.PhoneNumbers,
		Emails:       c.Emails,
		Addresses:    make(map[string]Address, len(c.Addresses)),
	}
	if out.PhoneNumbers == nil {
		out.PhoneNumbers = map[string]string{}
	}
	if out.Emails == nil {
		out.Emails = map[string]string{}
	}
	for label, a := range c.Addresses {
		out.Addresses[label] = Address{
			Country: a.Country,
			Street:  a.Street,
			City:    a.City,
			State:   a.State,
			Zipcode: a.Zipcode,
		}
	}
	return out
}

func toServiceAddresses(in map[string]Address) map[string]contactsvc.Address {
	if in == nil {
		return nil
	}
	out := make(map[string]contactsvc.Address, len(in))
	for label, a := range in {
		out[label] = contactsvc.Address{
			Country: a.Country,
			Street:  a.Street,
			City:    a.City,
			State:   a.State,
			Zipcode: a.Zipcode,
		}
	}
	return out
}
