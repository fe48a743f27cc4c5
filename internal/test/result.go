package test

// Result 对应 ginx.Result，Data 带上具体类型方便断言
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}
