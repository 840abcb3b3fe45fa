package model

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для получения новой пары)
	// example: vcSi0369y1I62wOpxZFpgZ...
	RefreshToken string `json:"refreshToken"`
}

// SessionResult : результат login / register / refresh.
// Ошибки валидации и аутентификации возвращаются здесь, а не через error
type SessionResult struct {
	IsSucceed    bool   `json:"isSucceed"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Message      string `json:"message,omitempty"`
}

func FailedSession(message string) *SessionResult {
	return &SessionResult{IsSucceed: false, Message: message}
}

// Message : письмо для отправки через notifier
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
