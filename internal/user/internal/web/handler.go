package web

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/user/internal/domain"
	"github.com/healthproof/healthproof/internal/user/internal/errs"
	"github.com/healthproof/healthproof/internal/user/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	codeSvc service.VerificationCodeSvc
	userSvc service.UserService
	coinSvc coin.Service
}

func NewHandler(codeSvc service.VerificationCodeSvc,
	userSvc service.UserService, coinSvc coin.Service) *Handler {
	return &Handler{
		codeSvc: codeSvc,
		userSvc: userSvc,
		coinSvc: coinSvc,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.GET("/profile", ginx.S(h.Profile))
	users.POST("/profile", ginx.BS[EditReq](h.Edit))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.POST("/code", ginx.B[SendCodeReq](h.SendCode))
	users.POST("/login", ginx.B[LoginReq](h.Login))
}

func (h *Handler) SendCode(ctx *ginx.Context, req SendCodeReq) (ginx.Result, error) {
	if !validEmail(req.Email) {
		return ginx.Result{Code: errs.InvalidEmail.Code, Msg: errs.InvalidEmail.Msg}, nil
	}
	err := h.codeSvc.Send(ctx.Request.Context(), req.Email)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) Login(ctx *ginx.Context, req LoginReq) (ginx.Result, error) {
	if !validEmail(req.Email) {
		return ginx.Result{Code: errs.InvalidEmail.Code, Msg: errs.InvalidEmail.Msg}, nil
	}
	err := h.codeSvc.Verify(ctx.Request.Context(), req.Email, req.Code)
	if err != nil {
		// 过期、没发过、不匹配都按验证码不对处理
		if errors.Is(err, service.ErrCodeMismatch) ||
			errors.Is(err, service.ErrCodeNotFound) {
			return ginx.Result{Code: errs.CodeMismatch.Code, Msg: errs.CodeMismatch.Msg}, nil
		}
		return systemErrorResult, err
	}
	user, err := h.userSvc.FindOrCreateByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		return systemErrorResult, err
	}
	// 登录痕迹，失败了不影响登录
	_ = h.userSvc.TouchLastLogin(ctx.Request.Context(), user.Id)
	_, err = session.NewSessionBuilder(ctx, user.Id).
		// 权限标记位，管理端靠它做准入
		SetJwtData(map[string]string{
			"admin": strconv.FormatBool(user.Admin),
		}).Build()
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Profile{
			Id:       user.Id,
			Nickname: user.Nickname,
			Email:    user.Email,
			IsAdmin:  user.Admin,
		},
	}, nil
}

func (h *Handler) Profile(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	u, err := h.userSvc.Profile(ctx.Request.Context(), uid)
	if err != nil {
		return systemErrorResult, err
	}
	balance, err := h.coinSvc.Balance(ctx.Request.Context(), uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Profile{
			Id:            u.Id,
			Nickname:      u.Nickname,
			Email:         u.Email,
			IsAdmin:       u.Admin,
			Balance:       balance,
			LastLoginDate: u.LastLoginDate,
		},
	}, nil
}

type EditReq struct {
	Nickname string `json:"nickname"`
}

// Edit 用户编辑信息
func (h *Handler) Edit(ctx *ginx.Context, req EditReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	err := h.userSvc.UpdateNonSensitiveInfo(ctx.Request.Context(), domain.User{
		Id:       uid,
		Nickname: req.Nickname,
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Msg: "OK",
	}, nil
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
