package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go_flight_academy/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディが空です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return nil
}

// ValidateStruct はバリデーションを実行し、失敗時は日本語メッセージ付きの AppError を返します。
func ValidateStruct(v interface{}) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationErrorResponse(verrs)
	}
	return model.NewAppError("VALIDATION_ERROR", "入力値の検証に失敗しました。", "", model.ErrInvalidInput)
}

// QueryInt はクエリパラメータを整数として読みます。未指定なら def を返します。
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewAppError("INVALID_QUERY_PARAMETER", fmt.Sprintf("%sは整数で指定してください。", key), key, model.ErrInvalidInput)
	}
	return n, nil
}

// QueryBool はクエリパラメータを真偽値として読みます。
func QueryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, model.NewAppError("INVALID_QUERY_PARAMETER", fmt.Sprintf("%sはtrueまたはfalseで指定してください。", key), key, model.ErrInvalidInput)
	}
	return b, nil
}

// QueryList は繰り返し指定とカンマ区切りの両方を受け付けます (?tags=a&tags=b,c)。
func QueryList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
