// Package sanitizer strips HTML from request input before validation.
//
// [StripHTML] uses bluemonday's strict policy and returns plain text.
// [StripInput] applies it across a decoded request body:
//
//	clean := sanitizer.StripInput(c.All(), "password", "password_confirmation")
package sanitizer
