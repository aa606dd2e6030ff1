package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/commercekit/go-order-api/internal/domains/catalog/application"
	catalogports "github.com/commercekit/go-order-api/internal/domains/catalog/ports"
	customerapp "github.com/commercekit/go-order-api/internal/domains/customers/application"
	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"
	orderapp "github.com/commercekit/go-order-api/internal/domains/orders/application"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
	apierrors "github.com/commercekit/go-order-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves plain status call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondCustomerServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, customerports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, customerports.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, customerapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func respondProductServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogports.ErrDuplicateName):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

// respondOrderServiceError translates placement failures. Unknown customers
// and products are client mistakes on placement, not missing resources, so
// they map to 400 rather than 404. Stock exhaustion and idempotency key
// reuse both map to 409.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var stockErr *orderapp.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		respondProblem(c, apierrors.ErrConflict.
			WithDetail(stockErr.Error()).
			WithExtension("productId", stockErr.ProductID).
			WithExtension("requested", stockErr.Requested).
			WithExtension("available", stockErr.Available))
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, orderapp.ErrCustomerNotFound),
		errors.Is(err, orderapp.ErrProductNotFound),
		errors.Is(err, orderapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, orderports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
