package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat      = errors.New("timeout_express format invalid")
	ErrNonPositiveValue   = errors.New("timeout_express must be positive")
	ErrGatewayFailure     = errors.New("alipay gateway returned failure")
	ErrGatewayTransport   = errors.New("alipay gateway transport error")
	ErrGatewayUnavailable = errors.New("alipay gateway client unavailable")
	ErrTradeNotFound      = errors.New("alipay trade not exist")
	ErrAmountInvalid      = errors.New("amount must be a positive number")
	ErrAmountPrecision    = errors.New("amount must have at most 2 decimal places")
)

var (
	// ErrTimeoutUnit 缺少 m/h/d/c 单位
	ErrTimeoutUnit = fmt.Errorf("%w: must end with m, h, d or c", ErrInvalidFormat)
	// ErrTimeoutNotInteger 数值部分不是整数
	ErrTimeoutNotInteger = fmt.Errorf("%w: numeric part must be an integer", ErrInvalidFormat)
)
