package handler

import (
	"errors"
	"net/http"

	customError "github.com/paluyo/houserent/pkg/errors"
	"github.com/paluyo/houserent/pkg/response"
)

// writeError maps business errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var business *customError.BusinessError
	if !errors.As(err, &business) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch business.Code {
	case customError.ErrCodeInvoiceNotFound,
		customError.ErrCodeTenantNotFound,
		customError.ErrCodeRoomNotFound:
		response.NotFound(w, business.Message)
	case customError.ErrCodeDuplicateInvoice,
		customError.ErrCodeRoomAlreadyExists,
		customError.ErrCodeUsernameTaken:
		response.Conflict(w, business.Message, business.Err)
	case customError.ErrCodeInvalidPaymentAmount,
		customError.ErrCodeRoomFull,
		customError.ErrCodeRoomUnavailable:
		response.UnprocessableEntity(w, business.Message, business.Err)
	case customError.ErrCodeInvalidCredentials:
		response.Unauthorized(w, business.Message)
	default:
		response.InternalServerError(w, business.Message, business.Err)
	}
}
