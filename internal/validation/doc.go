// Package validation holds the form rules shared by every SikaCare screen:
// e-mail shape, password strength, password confirmation, phone and
// verification-code input, gender codes and birthdates.
//
// All functions are pure and safe for concurrent use.
package validation
