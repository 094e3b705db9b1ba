package domain

import "fmt"

// BizError is a business failure with a stable code. Codes below 1000 are
// generic, the 3xxx range belongs to the account service and the 4xxx range
// to the goods service.
type BizError struct {
	Code    int
	Message string
}

func (e *BizError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

var (
	ErrInvalidRequest = &BizError{Code: 400, Message: "invalid request"}

	ErrAddressNotFound  = &BizError{Code: 3000, Message: "address not found"}
	ErrBalanceNotEnough = &BizError{Code: 3001, Message: "balance not enough"}

	ErrInvalidGoodsCount  = &BizError{Code: 4000, Message: "purchase count must be larger than zero"}
	ErrGoodsNotFound      = &BizError{Code: 4001, Message: "goods not found"}
	ErrInventoryNotEnough = &BizError{Code: 4002, Message: "goods inventory not enough"}
	ErrGoodsCountMismatch = &BizError{Code: 4003, Message: "goods count does not match the request"}
	ErrDuplicateGoods     = &BizError{Code: 4004, Message: "duplicate goods id in request"}

	ErrLogisticsPublish = &BizError{Code: 5001, Message: "send logistics message failed"}
)

var knownErrors = []*BizError{
	ErrInvalidRequest,
	ErrAddressNotFound,
	ErrBalanceNotEnough,
	ErrInvalidGoodsCount,
	ErrGoodsNotFound,
	ErrInventoryNotEnough,
	ErrGoodsCountMismatch,
	ErrDuplicateGoods,
	ErrLogisticsPublish,
}

// ErrorByCode maps a wire-level error code back to its sentinel error, so
// remote capability clients surface the same errors as local ones. Unknown
// codes yield a plain BizError with the given code and message.
func ErrorByCode(code int, message string) error {
	for _, e := range knownErrors {
		if e.Code == code {
			return e
		}
	}
	return &BizError{Code: code, Message: message}
}
