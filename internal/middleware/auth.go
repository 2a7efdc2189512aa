package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/go-petr/snapledger/pkg/web"
)

// Authorization header constants.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Authorization errors.
var (
	ErrAuthHeaderNotFound  = errorspkg.New(errorspkg.KindUnauthenticated, "authorization header is not provided")
	ErrBadAuthHeaderFormat = errorspkg.New(errorspkg.KindUnauthenticated, "invalid authorization header format")
	ErrUnsupportedAuthType = errorspkg.New(errorspkg.KindUnauthenticated, "unsupported authorization type")
)

// AddAuthorization creates a token for accountID and sets it on the request.
func AddAuthorization(r *http.Request, maker tokenpkg.Maker, authType, accountID string, duration time.Duration) error {
	token, _, err := maker.CreateToken(accountID, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware rejects requests without a valid bearer access token and
// stores the token payload in the gin context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// AccountID returns the account id of the authenticated caller.
func AccountID(gctx *gin.Context) string {
	payload, ok := gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
	if !ok {
		return ""
	}

	return payload.AccountID
}
