package errs

var (
	SystemError     = ErrorCode{Code: 504001, Msg: "系统错误"}
	ClaimNotFound   = ErrorCode{Code: 504002, Msg: "命题不存在"}
	MarketNotActive = ErrorCode{Code: 504003, Msg: "命题未开放投票"}
	AlreadyVoted    = ErrorCode{Code: 504004, Msg: "已经投过票了"}
	CoinNotEnough   = ErrorCode{Code: 504005, Msg: "金币不足"}
	InvalidSide     = ErrorCode{Code: 504006, Msg: "非法的投票方向"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
