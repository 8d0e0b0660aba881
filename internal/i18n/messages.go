package i18n

var catalog = map[string]map[string]string{
	LocaleEN: {
		"trade_status.WAIT_BUYER_PAY": "awaiting payment",
		"trade_status.TRADE_CLOSED":   "transaction closed",
		"trade_status.TRADE_SUCCESS":  "payment succeeded",
		"trade_status.TRADE_FINISHED": "transaction finished",
		"trade_status.unknown":        "unknown status",

		"query.pending":   "awaiting payment",
		"query.not_paid":  "payment not yet successful",
		"query.succeeded": "query succeeded",
		"query.failed":    "query failed",

		"order.create_failed":        "failed to create order",
		"order.amount_invalid":       "amount must be a positive number",
		"order.amount_precision":     "amount must have at most 2 decimal places",
		"order.subject_required":     "subject is required",
		"order.timeout_unit_invalid": "timeout format is invalid, it must end with m, h, d or c",
		"order.timeout_not_integer":  "timeout value must be an integer",
		"order.timeout_not_positive": "timeout value must be greater than 0",
		"order.gateway_unavailable":  "payment gateway is not configured",
		"order.too_many_requests":    "too many requests, please retry later",
		"environment.switched":       "environment switched",
		"environment.invalid_body":   "request body is invalid",
		"environment.sandbox":        "sandbox",
		"environment.production":     "production",
		"notify.signature_invalid":   "notification signature is invalid",
	},
	LocaleZH: {
		"trade_status.WAIT_BUYER_PAY": "等待付款",
		"trade_status.TRADE_CLOSED":   "交易关闭",
		"trade_status.TRADE_SUCCESS":  "支付成功",
		"trade_status.TRADE_FINISHED": "交易完成",
		"trade_status.unknown":        "未知状态",

		"query.pending":   "等待支付",
		"query.not_paid":  "支付未成功",
		"query.succeeded": "查询成功",
		"query.failed":    "查询失败",

		"order.create_failed":        "创建订单失败",
		"order.amount_invalid":       "金额必须为正数",
		"order.amount_precision":     "金额最多保留两位小数",
		"order.subject_required":     "商品名称不能为空",
		"order.timeout_unit_invalid": "超时时间格式错误，必须以m、h、d或c结尾",
		"order.timeout_not_integer":  "超时时间必须是整数",
		"order.timeout_not_positive": "超时时间必须大于0",
		"order.gateway_unavailable":  "支付网关未配置",
		"order.too_many_requests":    "请求过于频繁，请稍后再试",
		"environment.switched":       "环境切换成功",
		"environment.invalid_body":   "请求体格式错误",
		"environment.sandbox":        "沙箱环境",
		"environment.production":     "正式环境",
		"notify.signature_invalid":   "通知签名校验失败",
	},
}
