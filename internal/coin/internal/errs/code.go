package errs

var (
	SystemError = ErrorCode{Code: 502001, Msg: "系统错误"}
	// CoinNotEnough 余额不足属于业务失败，不走系统错误
	CoinNotEnough = ErrorCode{Code: 502002, Msg: "金币不足"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
