package service

import (
	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/i18n"
)

var tradeStatusKeys = map[string]string{
	constants.AlipayTradeStatusWaitBuyerPay: "trade_status.WAIT_BUYER_PAY",
	constants.AlipayTradeStatusClosed:       "trade_status.TRADE_CLOSED",
	constants.AlipayTradeStatusSuccess:      "trade_status.TRADE_SUCCESS",
	constants.AlipayTradeStatusFinished:     "trade_status.TRADE_FINISHED",
}

// BuyerInfo 买家信息
type BuyerInfo struct {
	LogonID  interface{} `json:"logon_id"`
	UserID   interface{} `json:"user_id"`
	UserType interface{} `json:"user_type"`
}

// OrderStatus 订单状态查询结果，字段值取自网关原始数据
type OrderStatus struct {
	Status     interface{} `json:"status"`
	StatusDesc string      `json:"status_desc"`
	OrderID    interface{} `json:"order_id"`
	TradeNo    interface{} `json:"trade_no"`
	Amount     interface{} `json:"amount"`
	BuyerInfo  *BuyerInfo  `json:"buyer_info"`
}

// DescribeTradeStatus 交易状态描述，未知状态统一为 unknown
func DescribeTradeStatus(locale, status string) string {
	key, ok := tradeStatusKeys[status]
	if !ok {
		key = "trade_status.unknown"
	}
	return i18n.T(locale, key)
}

// BuildOrderStatus 组装订单状态；仅当存在 buyer_logon_id 时附带买家信息
func BuildOrderStatus(data map[string]interface{}, locale string) OrderStatus {
	status := stringField(data, "trade_status")
	result := OrderStatus{
		Status:     data["trade_status"],
		StatusDesc: DescribeTradeStatus(locale, status),
		OrderID:    data["out_trade_no"],
		TradeNo:    data["trade_no"],
		Amount:     data["total_amount"],
	}
	if stringField(data, "buyer_logon_id") != "" {
		result.BuyerInfo = &BuyerInfo{
			LogonID:  data["buyer_logon_id"],
			UserID:   data["buyer_user_id"],
			UserType: data["buyer_user_type"],
		}
	}
	return result
}
