package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go_flight_academy/internal/config"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errMissingHeader = errors.New("authorization header missing")
	errBadHeader     = errors.New("invalid authorization header format")
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを必須とし、検証するミドルウェア
// トークンは外部の認証サービスが発行し、sub にユーザーIDが入っている前提
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userID, err := authenticate(r, cfg.JWT.SecretKey)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				webutil.HandleError(w, logger, authError(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID)))
		})
	}
}

// OptionalJWTAuthMiddleware はトークンがあれば検証し、なければ未ログインとして通します。
// 無効なトークンも未ログイン扱いです (WARN ログのみ)。
func OptionalJWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(r, cfg.JWT.SecretKey)
			switch {
			case err == nil:
				r = r.WithContext(withUser(r.Context(), userID))
			case errors.Is(err, errMissingHeader):
				// 未ログイン
			default:
				GetLogger(r.Context()).Warn("Invalid token on optional auth route, treating as anonymous", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(r *http.Request, secret string) (uuid.UUID, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, errMissingHeader
	}

	// "Bearer {token}" の形式を検証
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return uuid.Nil, errBadHeader
	}

	// 署名と有効期限(exp)を検証
	token, err := jwt.Parse(headerParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return uuid.Nil, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return uuid.Nil, errors.New("subject (sub) claim missing")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject (sub) format: %w", err)
	}
	// uuid.Nil は未ログインを表すのでユーザーIDとしては受け付けない
	if userID == uuid.Nil {
		return uuid.Nil, errors.New("subject (sub) must not be the nil UUID")
	}
	return userID, nil
}

func authError(err error) *model.AppError {
	switch {
	case errors.Is(err, errMissingHeader):
		return model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthorized)
	case errors.Is(err, errBadHeader):
		return model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.NewAppError("TOKEN_EXPIRED", "トークンの有効期限が切れています。", "", model.ErrUnauthorized)
	default:
		return model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthorized)
	}
}

// withUser はユーザーIDとユーザーID付きのロガーをコンテキストにセットします。
func withUser(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, model.UserIDKey, userID)
	return WithLogger(ctx, GetLogger(ctx).With("user_id", userID.String()))
}

// GetUserIDFromContext は認証済みユーザーのIDを返します。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "ログインが必要です。", "", model.ErrUnauthorized)
	}
	return value, nil
}

// OptionalUserID は未ログインなら uuid.Nil を返します。
func OptionalUserID(ctx context.Context) uuid.UUID {
	value, _ := ctx.Value(model.UserIDKey).(uuid.UUID)
	return value
}
