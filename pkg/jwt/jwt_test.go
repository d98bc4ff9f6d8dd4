package jwt

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// TestManager_GenerateAndParse 测试Token生成和解析
func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "alice@example.com", "Alice", "admin")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不完整")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("期望过期时间%d秒，实际%d秒", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("期望UserID=42，实际%d", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("期望Email=alice@example.com，实际%s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("期望Role=admin，实际%s", claims.Role)
	}
}

// TestManager_ParseExpiredToken 测试过期Token
func TestManager_ParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "a@b.com", "A", "user")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(pair.AccessToken)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("期望ErrTokenExpired，实际%v", err)
	}
}

// TestManager_ParseInvalidToken 测试非法Token
func TestManager_ParseInvalidToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	// 随机字符串
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("期望ErrInvalidToken，实际%v", err)
	}

	// 密钥不匹配
	other := NewManager("other-secret", time.Hour, 7*24*time.Hour)
	pair, _ := other.GenerateToken(1, "a@b.com", "A", "user")
	if _, err := m.ParseToken(pair.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("期望ErrInvalidToken，实际%v", err)
	}
}

// TestManager_RefreshAccessToken 测试刷新Access Token
func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(7, "bob@example.com", "Bob", "user")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newToken, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newToken)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("期望UserID=7，实际%d", claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("期望Role=user，实际%s", claims.Role)
	}
}
