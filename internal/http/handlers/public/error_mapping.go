package public

import (
	"errors"

	"github.com/f2fpay/internal/http/response"
	"github.com/f2fpay/internal/service"
)

// mappedHandlerError 定义业务错误到文案键的映射关系。
type mappedHandlerError struct {
	target error
	key    string
}

// mapHandlerError 命中规则时返回文案键错误，否则按 fallback 原样透传提示
func mapHandlerError(err error, rules []mappedHandlerError, fallback string) *response.AppError {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return response.WrapError(rule.key, nil)
		}
	}
	if fallback == "" && err != nil {
		fallback = err.Error()
	}
	return response.WrapDetail(fallback, err)
}

var timeoutExpressErrorRules = []mappedHandlerError{
	{target: service.ErrTimeoutUnit, key: "order.timeout_unit_invalid"},
	{target: service.ErrTimeoutNotInteger, key: "order.timeout_not_integer"},
	{target: service.ErrNonPositiveValue, key: "order.timeout_not_positive"},
}

var amountErrorRules = []mappedHandlerError{
	{target: service.ErrAmountPrecision, key: "order.amount_precision"},
	{target: service.ErrAmountInvalid, key: "order.amount_invalid"},
}

var gatewayErrorRules = []mappedHandlerError{
	{target: service.ErrGatewayUnavailable, key: "order.gateway_unavailable"},
}

var queryErrorRules = []mappedHandlerError{
	{target: service.ErrTradeNotFound, key: "query.not_paid"},
	{target: service.ErrGatewayUnavailable, key: "order.gateway_unavailable"},
}
