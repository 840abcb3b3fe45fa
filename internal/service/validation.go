package service

import (
	"net/mail"
	"unicode/utf8"
)

const (
	minUserNameLength = 3
	maxUserNameLength = 30
)

// userNameProblem : описание проблемы с именем пользователя или "" если все в порядке
func userNameProblem(userName string) string {
	n := utf8.RuneCountInString(userName)
	if n < minUserNameLength || n > maxUserNameLength {
		return "Username must be between 3 and 30 characters."
	}
	return ""
}

func emailProblem(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Email '" + email + "' is invalid."
	}
	return ""
}
