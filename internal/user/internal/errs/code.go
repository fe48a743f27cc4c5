package errs

var (
	SystemError = ErrorCode{Code: 501001, Msg: "系统错误"}

	InvalidEmail = ErrorCode{Code: 501002, Msg: "非法邮箱"}

	CodeMismatch = ErrorCode{Code: 501003, Msg: "验证码不对"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
