package email

import "context"

// Service 邮件发送抽象，验证码走这里发出去
type Service interface {
	SendMail(ctx context.Context, mail Mail) error
}

type Mail struct {
	From        string
	To          string
	Subject     string
	Body        []byte // HTML 正文
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	Content  []byte
	URL      string // 可公开访问的 HTTP(S) 地址；Aliyun DirectMail 需要该字段
}
