package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Invalid login credentials", "メールアドレスまたはパスワードが正しくありません"},
		{"Authentication failed due to invalid credentials", "メールアドレスまたはパスワードが正しくありません"},
		{"Email not confirmed", "メールアドレスが確認されていません。受信トレイの確認メールをご確認ください"},
		{"User not found", "ユーザーが見つかりません"},
		{"User already registered", "このメールアドレスは既に登録されています"},
		{"Password should be at least 6 characters", "パスワードは8文字以上で入力してください"},
		{"Unable to validate email address: invalid format", "メールアドレスの形式が正しくありません"},
		{"Email rate limit exceeded", "リクエストが多すぎます。しばらく時間をおいてから再度お試しください"},
		{"Invalid Refresh Token: Already Used", "セッションの有効期限が切れました。再度ログインしてください"},
		{"JWT expired", "セッションの有効期限が切れました。再度ログインしてください"},
		{"Failed to fetch", "ネットワークエラーが発生しました。接続を確認してください"},
		{"NetworkError when attempting to fetch resource", "ネットワークエラーが発生しました。接続を確認してください"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Translate(tc.raw))
		})
	}
}

func TestTranslateFallbackKeepsRawMessage(t *testing.T) {
	raw := "some totally novel error"
	got := Translate(raw)
	assert.Contains(t, got, raw)
	assert.Equal(t, "エラーが発生しました: "+raw, got)
}

func TestTranslateMatchingIsCaseSensitive(t *testing.T) {
	// lowercase variant of a known pattern must not match it
	got := Translate("invalid login credentials")
	assert.NotEqual(t, "メールアドレスまたはパスワードが正しくありません", got)
	assert.Contains(t, got, "invalid login credentials")
}

func TestTranslateFirstMatchWins(t *testing.T) {
	// matches both the credentials and network patterns; credentials
	// appears first in the table
	got := Translate("NetworkError caused by invalid credentials")
	assert.Equal(t, "メールアドレスまたはパスワードが正しくありません", got)
}

func TestTranslateIsIdempotentPerInput(t *testing.T) {
	raw := "Invalid login credentials"
	assert.Equal(t, Translate(raw), Translate(raw))
}
