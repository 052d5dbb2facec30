package payment

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
	"marketplace/internal/entities"
)

const (
	statusAccepted = "accepted"
	statusSettled  = "settled"
)

func idempotencyKey(request entities.PaymentRequest) string {
	return fmt.Sprintf("%s:%d", request.OfferID, request.Version)
}

func fromDomain(request entities.PaymentRequest) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"offer_id":        request.OfferID,
		"version":         request.Version,
		"amount":          request.Amount,
		"currency":        request.Currency,
		"payer_id":        request.PayerID,
		"payee_id":        request.PayeeID,
		"reference":       request.Reference,
		"idempotency_key": idempotencyKey(request),
	})
}

// statusFrom достаёт status из ответа, пустая строка если поля нет.
func statusFrom(resp *structpb.Struct) (status, reason string) {
	if resp == nil {
		return "", ""
	}
	fields := resp.GetFields()
	return fields["status"].GetStringValue(), fields["reason"].GetStringValue()
}
