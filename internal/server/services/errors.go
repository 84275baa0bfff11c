package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/server/auth"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
)

var (
	errNotLibrarian = common.NewError(common.ErrorForbidden, "You are not a librarian")
	errNotUser      = common.NewError(common.ErrorForbidden, "You are not a user")
)

func requireLibrarian(caller models.Identity) error {
	if !auth.IsLibrarian(caller) {
		return errNotLibrarian
	}
	return nil
}

func requireUser(caller models.Identity) error {
	if !auth.IsUser(caller) {
		return errNotUser
	}
	return nil
}

func invalid(msg string) error {
	return common.NewError(common.ErrorValidation, msg)
}

// internal hides err behind common.ErrorInternal; the router logs the
// detail and answers with a generic message.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

// notFoundOr maps a repository ErrorNotFound to a caller-facing 404 with msg.
func notFoundOr(op string, err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NewError(common.ErrorNotFound, msg)
	}
	return internal(op, err)
}

// asServiceError passes *common.Error and internal errors through and
// classifies anything else (begin/commit failures) as internal.
func asServiceError(op string, err error) error {
	var e *common.Error
	if errors.As(err, &e) || errors.Is(err, common.ErrorInternal) {
		return err
	}
	return internal(op, err)
}
