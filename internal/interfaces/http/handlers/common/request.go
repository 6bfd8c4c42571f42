// Package common provides shared HTTP handler utilities.
package common

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/constants"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// GetPrincipal returns the caller stored by the auth middleware.
func GetPrincipal(c *gin.Context) (party.Ref, error) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return party.Ref{}, errors.NewUnauthorizedError("principal not authenticated")
	}
	principal, ok := value.(party.Ref)
	if !ok {
		return party.Ref{}, errors.NewInternalError("invalid principal type in context")
	}
	return principal, nil
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid "+name, raw)
	}
	return uint(id), nil
}

// ParsePagination reads page and page_size, clamping them to the allowed range.
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil || page < 1 {
		page = constants.DefaultPage
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}

// BindError converts a JSON binding failure into a validation error.
func BindError(err error) error {
	return errors.NewValidationError("invalid request body", err.Error())
}

// ParseRefs parses "kind:id" strings into party references.
func ParseRefs(raw []string) ([]party.Ref, error) {
	refs := make([]party.Ref, 0, len(raw))
	for _, s := range raw {
		ref, err := party.Parse(s)
		if err != nil {
			return nil, errors.NewValidationError("invalid participant reference", err.Error())
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
