package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount 解析订单金额：必须为正且最多两位小数，不做舍入
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, ErrAmountPrecision
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountInvalid
	}
	return amount, nil
}
