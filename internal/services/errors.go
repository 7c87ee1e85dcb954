package services

import "errors"

// ValidationError porte un message destiné à l'utilisateur ; les handlers le
// traduisent en 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// ErrForbidden : l'appelant n'est pas propriétaire de la ressource.
var ErrForbidden = errors.New("accès refusé")

// ErrInvalidCredentials couvre email inconnu et mot de passe erroné sans les
// distinguer.
var ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
