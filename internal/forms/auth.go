// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package forms

import "strings"

const fillAllFields = "Please fill in all fields"

// LoginForm is the login screen.
type LoginForm struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

var loginMessages = map[string]string{
	"email.notblank":    fillAllFields,
	"password.notblank": fillAllFields,
}

// Validate checks that both fields are filled in.
func (f LoginForm) Validate() error {
	return orNil(check(f, loginMessages))
}

// RegisterForm is the sign-up screen.
type RegisterForm struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=8"`
}

var registerMessages = map[string]string{
	"name.notblank":     "Name is required",
	"email.notblank":    "Email is required",
	"email.email":       "Email must be a valid address",
	"password.notblank": "Password is required",
	"password.min":      "Password must be at least 8 characters",
}

// Validate checks the sign-up fields. Name and email are trimmed first.
func (f *RegisterForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return orNil(check(f, registerMessages))
}
