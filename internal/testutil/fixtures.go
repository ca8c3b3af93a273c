package testutil

import (
	"github.com/arvela/contactbook/internal/service/contact"
)

// ContactParams returns a valid contact creation fixture. Each call builds a
// fresh value so tests never share mutable state.
func ContactParams(name string) contact.CreateParams {
	return contact.CreateParams{
		Name: name,
		PhoneNumbers: map[string]string{
			"home": "+15551234567",
		},
		Emails: map[string]string{
			"personal": name + "@example.com",
		},
		Addresses: map[string]contact.Address{
			"home": Address(),
		},
	}
}

// Address returns a valid postal-address fixture.
func Address() contact.Address {
	return contact.Address{
		Country: "Finland",
		Street:  "Mannerheimintie 1",
		City:    "Helsinki",
		State:   "Uusimaa",
		Zipcode: "00100",
	}
}
