package response

const (
	CodeOK   = 0
	CodeFail = 1
)

// PendingCode /api/query 统一待支付返回码，与网关 40004 保持一致
const PendingCode = "40004"
