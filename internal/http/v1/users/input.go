package users

// UserCreateInput for POST /users
type UserCreateInput struct {
	Body struct {
		Username string `json:"username" minLength:"3" maxLength:"20" pattern:"^[A-Za-z0-9.@]+$" required:"true" doc:"Unique username" example:"robert"`
		Avatar   string `json:"avatar,omitempty" format:"uri" maxLength:"255" doc:"Avatar image URI" example:"https://example.com/robert.png"`
	}
}

// UserGetInput for GET /users/me (no parameters)
type UserGetInput struct{}
