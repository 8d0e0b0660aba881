package service

import (
	"fmt"
	"time"
)

const orderIDTimeLayout = "20060102150405"

// NewOrderID 生成商户订单号：yyyyMMddHHmmss + 毫秒时间戳末 4 位
func NewOrderID(now time.Time) string {
	return now.Format(orderIDTimeLayout) + fmt.Sprintf("%04d", now.UnixMilli()%10000)
}
