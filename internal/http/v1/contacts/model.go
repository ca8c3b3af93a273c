package contacts

// Address is the postal-address shape used in requests and responses.
type Address struct {
	Country string `json:"country" minLength:"3" maxLength:"20" required:"true" doc:"Country"     example:"Finland"`
	Street  string `json:"street"  minLength:"4" maxLength:"50" required:"true" doc:"Street"      example:"Mannerheimintie 1"`
	City    string `json:"city"    minLength:"3" maxLength:"50" required:"true" doc:"City"        example:"Helsinki"`
	State   string `json:"state"   minLength:"3" maxLength:"20" required:"true" doc:"State"       example:"Uusimaa"`
	Zipcode string `json:"zipcode" minLength:"5" maxLength:"15" required:"true" doc:"Postal code" example:"00100"`
}

// Contact is the response projection of one address-book entry. The owner is
// never part of the projection; it is implied by the authenticated caller.
type Contact struct {
	ID           string             `json:"id"           doc:"Unique identifier" example:"4b8f78c1-6f0e-4a3a-9c62-0f1d8f6e2a10"`
	Name         string             `json:"name"         doc:"Display name"      example:"Mom"`
	PhoneNumbers map[string]string  `json:"phoneNumbers" doc:"Label to phone number (E.164)"`
	Emails       map[string]string  `json:"emails"       doc:"Label to email address"`
	Addresses    map[string]Address `json:"addresses"    doc:"Label to postal address"`
}
