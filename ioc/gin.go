package ioc

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/pkg/middleware"
	"github.com/healthproof/healthproof/internal/user"
	"github.com/healthproof/healthproof/internal/vote"
	"github.com/redis/go-redis/v9"

	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	cmd redis.Cmdable,
	userHdl *user.Handler,
	coinHdl *coin.Handler,
	voteHdl *vote.Handler,
	claimHdl *claim.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "healthproof.icu")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 公开路由走读限流
	res.Use(initLimiter(cmd, "read"))
	userHdl.PublicRoutes(res.Engine)
	claimHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	// 写操作限流更紧
	res.Use(initLimiter(cmd, "action"))
	userHdl.PrivateRoutes(res.Engine)
	coinHdl.PrivateRoutes(res.Engine)
	voteHdl.PrivateRoutes(res.Engine)
	return res
}

func initLimiter(cmd redis.Cmdable, category string) gin.HandlerFunc {
	type Config struct {
		Limit  int64         `yaml:"limit"`
		Window time.Duration `yaml:"window"`
	}
	var cfg Config
	err := econf.UnmarshalKey("ratelimit."+category, &cfg)
	if err != nil {
		panic(err)
	}
	return middleware.NewRatelimitBuilder(cmd, category, cfg.Limit, cfg.Window).Build()
}
