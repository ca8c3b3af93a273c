package contacts

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/danielgtaylor/huma/v2"
)

const (
	minLabelLen = 3
	maxLabelLen = 15
	minPhoneLen = 10
	maxPhoneLen = 15
	maxEntries  = 20
)

// phonePattern is the accepted phone-number shape: a leading plus, a
// non-zero first digit, digits only.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d+$`)

// ContactCreateBody for POST /contacts. Schema tags cover the scalar
// constraints; Resolve validates the label-keyed mappings. All violations
// are collected, not fail-fast.
type ContactCreateBody struct {
	Name         string             `json:"name" minLength:"2" maxLength:"140" required:"true" doc:"Display name" example:"Mom"`
	PhoneNumbers map[string]string  `json:"phoneNumbers" required:"true" doc:"Label to phone number, 1-20 entries"`
	Emails       map[string]string  `json:"emails,omitempty" doc:"Label to email address, up to 20 entries"`
	Addresses    map[string]Address `json:"addresses,omitempty" doc:"Label to postal address, up to 20 entries"`
}

// Resolve implements huma.Resolver for the mapping constraints the schema
// tags cannot express.
func (b *ContactCreateBody) Resolve(_ huma.Context) []error {
	var errs []error
	errs = append(errs, validatePhoneNumbers(b.PhoneNumbers, true)...)
	errs = append(errs, validateEmails(b.Emails)...)
	errs = append(errs, validateAddresses(b.Addresses)...)
	return errs
}

// ContactCreateInput for POST /contacts
type ContactCreateInput struct {
	Body ContactCreateBody
}

// ContactUpdateBody for PATCH /contacts/{id}. Every field is optional;
// absent fields leave the stored contact untouched.
type ContactUpdateBody struct {
	Name         string             `json:"name,omitempty" minLength:"2" maxLength:"140" doc:"Display name" example:"Mom"`
	PhoneNumbers map[string]string  `json:"phoneNumbers,omitempty" doc:"Replaces the whole phone-number mapping when non-empty"`
	Emails       map[string]string  `json:"emails,omitempty" doc:"Replaces the whole email mapping when present"`
	Addresses    map[string]Address `json:"addresses,omitempty" doc:"Replaces the whole address mapping when present"`
}

// Resolve implements huma.Resolver.
func (b *ContactUpdateBody) Resolve(_ huma.Context) []error {
	var errs []error
	errs = append(errs, validatePhoneNumbers(b.PhoneNumbers, false)...)
	errs = append(errs, validateEmails(b.Emails)...)
	errs = append(errs, validateAddresses(b.Addresses)...)
	return errs
}

// ContactUpdateInput for PATCH /contacts/{id}
type ContactUpdateInput struct {
	ID   string `path:"id" doc:"Contact identifier"`
	Body ContactUpdateBody
}

// ContactGetInput for GET /contacts/{id}
type ContactGetInput struct {
	ID string `path:"id" doc:"Contact identifier"`
}

// ContactListInput for GET /contacts (no parameters)
type ContactListInput struct{}

// ContactDeleteInput for DELETE /contacts/{id}
type ContactDeleteInput struct {
	ID string `path:"id" doc:"Contact identifier"`
}

func validatePhoneNumbers(m map[string]string, required bool) []error {
	var errs []error
	if required && len(m) == 0 {
		errs = append(errs, &huma.ErrorDetail{
			Location: "body.phoneNumbers",
			Message:  fmt.Sprintf("expected between 1 and %d entries", maxEntries),
			Value:    m,
		})
	}
	if len(m) > maxEntries {
		errs = append(errs, tooManyEntries("body.phoneNumbers", m))
	}
	for label, value := range m {
		errs = append(errs, validateLabel("body.phoneNumbers", label)...)
		if len(value) < minPhoneLen || len(value) > maxPhoneLen {
			errs = append(errs, &huma.ErrorDetail{
				Location: "body.phoneNumbers." + label,
				Message:  fmt.Sprintf("expected length between %d and %d", minPhoneLen, maxPhoneLen),
				Value:    value,
			})
		}
		if !phonePattern.MatchString(value) {
			errs = append(errs, &huma.ErrorDetail{
				Location: "body.phoneNumbers." + label,
				Message:  "expected a plus sign followed by digits, e.g. +15551234567",
				Value:    value,
			})
		}
	}
	return errs
}

func validateEmails(m map[string]string) []error {
	var errs []error
	if len(m) > maxEntries {
		errs = append(errs, tooManyEntries("body.emails", m))
	}
	for label, value := range m {
		errs = append(errs, validateLabel("body.emails", label)...)
		if _, err := mail.ParseAddress(value); err != nil {
			errs = append(errs, &huma.ErrorDetail{
				Location: "body.emails." + label,
				Message:  "expected a well-formed email address",
				Value:    value,
			})
		}
	}
	return errs
}

// validateAddresses checks entry count and label shape; the address fields
// themselves are covered by the Address schema tags.
func validateAddresses(m map[string]Address) []error {
	var errs []error
	if len(m) > maxEntries {
		errs = append(errs, tooManyEntries("body.addresses", m))
	}
	for label := range m {
		errs = append(errs, validateLabel("body.addresses", label)...)
	}
	return errs
}

func validateLabel(location, label string) []error {
	if len(label) < minLabelLen || len(label) > maxLabelLen {
		return []error{&huma.ErrorDetail{
			Location: location,
			Message:  fmt.Sprintf("label %q: expected length between %d and %d", label, minLabelLen, maxLabelLen),
			Value:    label,
		}}
	}
	return nil
}

func tooManyEntries(location string, value any) error {
	return &huma.ErrorDetail{
		Location: location,
		Message:  fmt.Sprintf("expected at most %d entries", maxEntries),
		Value:    value,
	}
}
