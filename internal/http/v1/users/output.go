package users

// UserCreateOutput for POST /users (201 Created)
type UserCreateOutput struct {
	Location string `header:"Location" doc:"URL of created user"`
	Body     User
}

// UserGetOutput for GET /users/me
type UserGetOutput struct {
	Body User
}
