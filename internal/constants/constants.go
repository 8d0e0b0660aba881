package constants

// 网关环境
const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// 支付宝网关地址
const (
	AlipaySandboxGatewayURL    = "https://openapi-sandbox.dl.alipaydev.com/gateway.do"
	AlipayProductionGatewayURL = "https://openapi.alipay.com/gateway.do"
)

// 支付宝接口方法
const (
	AlipayMethodTradePrecreate = "alipay.trade.precreate"
	AlipayMethodTradeQuery     = "alipay.trade.query"
)

// 支付宝网关返回码
const (
	AlipayCodeSuccess          = "10000"
	AlipayCodeBusinessFailed   = "40004"
	AlipaySubCodeTradeNotExist = "ACQ.TRADE_NOT_EXIST"
)

// 支付宝交易状态
const (
	AlipayTradeStatusWaitBuyerPay = "WAIT_BUYER_PAY"
	AlipayTradeStatusClosed       = "TRADE_CLOSED"
	AlipayTradeStatusSuccess      = "TRADE_SUCCESS"
	AlipayTradeStatusFinished     = "TRADE_FINISHED"
	AlipayCallbackSuccess         = "success"
	AlipayCallbackFail            = "fail"
)

// 当面付产品码
const AlipayProductCodeFaceToFace = "FACE_TO_FACE_PAYMENT"

// 超时表达式
const (
	TimeoutExpressDefault  = "15m"
	TimeoutExpressOneCycle = "1c"
)

