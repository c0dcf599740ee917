package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"completed":       "完了フラグ",
	"scroll_progress": "スクロール率",
	"bookmarked":      "ブックマーク",
	"rating":          "評価",
	"sort_by":         "並び替え項目",
	"sort_order":      "並び順",
	"limit":           "取得件数",
	"offset":          "開始位置",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// --- ここからが日本語化の処理 ---
	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("oneof", "{0}は[{1}]のいずれかを指定してください。")

	// min / max は数値と文字列で文言を分ける
	registerBound := func(tag, numMsg, strMsg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			if err := ut.Add(tag+"-number", numMsg, true); err != nil {
				return err
			}
			return ut.Add(tag+"-string", strMsg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			key := tag + "-string"
			if isNumericKind(fe.Kind()) {
				key = tag + "-number"
			}
			t, _ := ut.T(key, translatedField(fe), fe.Param())
			return t
		})
	}
	registerBound("min", "{0}は{1}以上で指定してください。", "{0}は{1}文字以上で入力してください。")
	registerBound("max", "{0}は{1}以下で指定してください。", "{0}は{1}文字以下で入力してください。")
}
