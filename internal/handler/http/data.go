package http

// credentialsRequest is the JSON body of the registration endpoint.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// savePasswordRequest is the JSON body for creating a secret record.
// SecretValue may be omitted; the server then generates one.
type savePasswordRequest struct {
	ServiceName string `json:"service_name"`
	Use         string `json:"use"`
	Platform    string `json:"platform"`
	SecretValue string `json:"secret_value,omitempty"`
}

// updatePasswordRequest is the JSON body for overwriting a secret value.
type updatePasswordRequest struct {
	SecretValue string `json:"secret_value"`
}

// usernameResponse confirms which account a request acted on.
type usernameResponse struct {
	Username string `json:"username"`
}
