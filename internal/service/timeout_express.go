package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/f2fpay/internal/constants"
)

var timeoutUnitSeconds = map[byte]int64{
	'm': 60,
	'h': 3600,
	'd': 86400,
	'c': 0,
}

// ValidateTimeoutExpress 校验订单有效期表达式，只做语法检查。
// 网关最长只保留两小时，这里不做上限限制。
func ValidateTimeoutExpress(expr string) error {
	_, err := parseTimeoutExpress(expr)
	return err
}

// TimeoutSeconds 返回有效期秒数；以 c 结尾的表达式由网关按自然日计算，返回 0
func TimeoutSeconds(expr string) (int64, error) {
	value, err := parseTimeoutExpress(expr)
	if err != nil {
		return 0, err
	}
	unit := timeoutUnitSeconds[expr[len(expr)-1]]
	if unit == 0 {
		return 0, nil
	}
	if value > math.MaxInt64/unit {
		return math.MaxInt64, nil
	}
	return value * unit, nil
}

func parseTimeoutExpress(expr string) (int64, error) {
	if expr == "" {
		return 0, ErrTimeoutUnit
	}
	if _, ok := timeoutUnitSeconds[expr[len(expr)-1]]; !ok {
		return 0, ErrTimeoutUnit
	}
	if expr == constants.TimeoutExpressOneCycle {
		return 1, nil
	}
	prefix := expr[:len(expr)-1]
	value, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(prefix, "-") {
				return 0, ErrNonPositiveValue
			}
			return math.MaxInt64, nil
		}
		return 0, ErrTimeoutNotInteger
	}
	if value <= 0 {
		return 0, ErrNonPositiveValue
	}
	return value, nil
}
