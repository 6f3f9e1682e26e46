package entities

// Identity - аутентифицированный вызывающий, полученный из токена.
type Identity struct {
	UserID    string
	Username  string
	SessionID string
}
