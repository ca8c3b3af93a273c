package contacts

// ContactCreateOutput for POST /contacts (201 Created)
type ContactCreateOutput struct {
	Location string `header:"Location" doc:"URL of created contact"`
	Body     Contact
}

// ContactGetOutput for GET /contacts/{id}
type ContactGetOutput struct {
	Body Contact
}

// ContactListOutput for GET /contacts
type ContactListOutput struct {
	Body []Contact
}

// ContactUpdateOutput for PATCH /contacts/{id}
type ContactUpdateOutput struct {
	Body Contact
}
