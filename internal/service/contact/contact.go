package contact

import (
	"maps"
	"strings"
	"time"
)

// Address is a structured postal address embedded in a contact's address
// map. It is a value: equality is structural over all five fields.
type Address struct {
	Country string `json:"country"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

// Contact is one address-book entry. Exactly one user owns it at all times
// after creation; the owner is assigned by the service layer from the
// authenticated caller, never taken from client input.
type Contact struct {
	ID           string
	Name         string
	PhoneNumbers map[string]string
	Emails       map[string]string
	Addresses    map[string]Address
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Equal reports whether two contacts hold the same id, name and label
// mappings. Owner and timestamps are excluded.
func (c *Contact) Equal(other *Contact) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID &&
		c.Name == other.Name &&
		maps.Equal(c.PhoneNumbers, other.PhoneNumbers) &&
		maps.Equal(c.Emails, other.Emails) &&
		maps.Equal(c.Addresses, other.Addresses)
}

// merge applies whole-field replacement onto c: an incoming non-blank name
// or non-empty phone-number map replaces the stored field entirely, and a
// present (possibly empty) email or address map does the same. Fields not
// supplied are left untouched. There is no per-label merging: one phone
// number in params discards every stored label not mentioned.
func (c *Contact) merge(params UpdateParams) {
	if strings.TrimSpace(params.Name) != "" {
		c.Name = params.Name
	}
	if len(params.PhoneNumbers) > 0 {
		c.PhoneNumbers = maps.Clone(params.PhoneNumbers)
	}
	if params.Emails != nil {
		c.Emails = maps.Clone(params.Emails)
	}
	if params.Addresses != nil {
		c.Addresses = maps.Clone(params.Addresses)
	}
}

// clone returns a deep copy so stored state never escapes by reference.
func (c *Contact) clone() *Contact {
	if c == nil {
		return nil
	}
	out := *c
	out.PhoneNumbers = maps.Clone(c.PhoneNumbers)
	out.Emails = maps.Clone(c.Emails)
	out.Addresses = maps.Clone(c.Addresses)
	return &out
}
