// Package translate maps raw identity-provider error strings onto
// messages safe to show end users. The provider reports errors as free
// text, so matching is substring containment against an ordered table.
package translate

import "strings"

type entry struct {
	pattern string
	message string
}

// The table order is load-bearing: the first containing pattern wins,
// and several raw messages match more than one pattern (for example
// "Authentication failed due to invalid credentials" must resolve as a
// credentials error, not a generic network one).
var table = []entry{
	{"Invalid login credentials", "メールアドレスまたはパスワードが正しくありません"},
	{"invalid credentials", "メールアドレスまたはパスワードが正しくありません"},
	{"Email not confirmed", "メールアドレスが確認されていません。受信トレイの確認メールをご確認ください"},
	{"User not found", "ユーザーが見つかりません"},
	{"User already registered", "このメールアドレスは既に登録されています"},
	{"Password should be at least", "パスワードは8文字以上で入力してください"},
	{"Unable to validate email address", "メールアドレスの形式が正しくありません"},
	{"rate limit", "リクエストが多すぎます。しばらく時間をおいてから再度お試しください"},
	{"Refresh Token", "セッションの有効期限が切れました。再度ログインしてください"},
	{"JWT expired", "セッションの有効期限が切れました。再度ログインしてください"},
	{"Failed to fetch", "ネットワークエラーが発生しました。接続を確認してください"},
	{"NetworkError", "ネットワークエラーが発生しました。接続を確認してください"},
}

const fallbackPrefix = "エラーが発生しました: "

// Translate converts a raw provider error message into a user-facing
// one. Unknown messages are wrapped in a generic prefix rather than
// swallowed, so no failure disappears silently.
func Translate(raw string) string {
	for _, e := range table {
		if strings.Contains(raw, e.pattern) {
			return e.message
		}
	}
	return fallbackPrefix + raw
}
