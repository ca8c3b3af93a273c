package users

// User is the user response projection.
type User struct {
	ID       string `json:"id"               doc:"Unique identifier"  example:"user-123"`
	Username string `json:"username"         doc:"Unique username"    example:"robert"`
	Avatar   string `json:"avatar,omitempty" doc:"Avatar image URI"   example:"https://example.com/robert.png"`
}
