package alipay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/f2fpay/internal/constants"

	"github.com/shopspring/decimal"
)

// precreateExtraFields 允许透传到 alipay.trade.precreate 的业务字段
var precreateExtraFields = map[string]struct{}{
	"seller_id":               {},
	"discountable_amount":     {},
	"undiscountable_amount":   {},
	"buyer_logon_id":          {},
	"body":                    {},
	"goods_detail":            {},
	"product_code":            {},
	"operator_id":             {},
	"store_id":                {},
	"terminal_id":             {},
	"disable_pay_channels":    {},
	"enable_pay_channels":     {},
	"extend_params":           {},
	"business_params":         {},
	"time_expire":             {},
	"qr_code_timeout_express": {},
	"settle_info":             {},
	"merchant_order_no":       {},
	"query_options":           {},
}

// PrecreateRequest alipay.trade.precreate 请求
type PrecreateRequest struct {
	OutTradeNo     string
	TotalAmount    decimal.Decimal
	Subject        string
	TimeoutExpress string
	// Extra 额外业务字段，键需在允许列表内，值原样透传
	Extra map[string]interface{}
}

// APIMethod 接口方法名
func (r PrecreateRequest) APIMethod() string {
	return constants.AlipayMethodTradePrecreate
}

// BizContent 组装业务参数，金额固定两位小数字符串
func (r PrecreateRequest) BizContent() (map[string]interface{}, error) {
	outTradeNo := strings.TrimSpace(r.OutTradeNo)
	if outTradeNo == "" {
		return nil, fmt.Errorf("%w: out_trade_no is required", ErrRequestInvalid)
	}
	if !r.TotalAmount.Equal(r.TotalAmount.Round(2)) {
		return nil, fmt.Errorf("%w: total_amount must have at most 2 decimal places", ErrRequestInvalid)
	}
	if !r.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total_amount must be positive", ErrRequestInvalid)
	}
	subject := strings.TrimSpace(r.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrRequestInvalid)
	}
	bizContent := map[string]interface{}{
		"out_trade_no": outTradeNo,
		"total_amount": r.TotalAmount.StringFixed(2),
		"subject":      subject,
		"product_code": constants.AlipayProductCodeFaceToFace,
	}
	if timeout := strings.TrimSpace(r.TimeoutExpress); timeout != "" {
		bizContent["timeout_express"] = timeout
	}
	keys := make([]string, 0, len(r.Extra))
	for key := range r.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if _, ok := precreateExtraFields[name]; !ok {
			return nil, fmt.Errorf("%w: extra field %s is not allowed", ErrRequestInvalid, name)
		}
		bizContent[name] = r.Extra[key]
	}
	return bizContent, nil
}

// IsAllowedPrecreateField 判断字段是否允许透传
func IsAllowedPrecreateField(name string) bool {
	_, ok := precreateExtraFields[strings.TrimSpace(name)]
	return ok
}

// QueryRequest alipay.trade.query 请求，out_trade_no 与 trade_no 至少传一个
type QueryRequest struct {
	OutTradeNo string
	TradeNo    string
}

// APIMethod 接口方法名
func (r QueryRequest) APIMethod() string {
	return constants.AlipayMethodTradeQuery
}

// BizContent 组装业务参数
func (r QueryRequest) BizContent() (map[string]interface{}, error) {
	bizContent := map[string]interface{}{}
	if outTradeNo := strings.TrimSpace(r.OutTradeNo); outTradeNo != "" {
		bizContent["out_trade_no"] = outTradeNo
	}
	if tradeNo := strings.TrimSpace(r.TradeNo); tradeNo != "" {
		bizContent["trade_no"] = tradeNo
	}
	return bizContent, nil
}
