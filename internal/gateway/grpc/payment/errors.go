package payment

import "errors"

var (
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrUnexpectedResponse = errors.New("unexpected payment service response")
)
