package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func protectedRouter(secret string, tokens TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin", AdminMiddleware(secret, tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "exitlens", Duration: time.Hour}
}

func do(r *gin.Engine, header string) int {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAdminMiddlewareStaticSecret(t *testing.T) {
	r := protectedRouter("s3cret", testTokens())

	if code := do(r, "Bearer s3cret"); code != http.StatusOK {
		t.Errorf("correct secret: got %d, want 200", code)
	}
	if code := do(r, "Bearer wrong"); code != http.StatusUnauthorized {
		t.Errorf("wrong secret: got %d, want 401", code)
	}
	if code := do(r, ""); code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want 401", code)
	}
	if code := do(r, "Basic s3cret"); code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme: got %d, want 401", code)
	}
}

func TestAdminMiddlewareJWT(t *testing.T) {
	tokens := testTokens()
	r := protectedRouter("s3cret", tokens)

	token, _, err := tokens.Sign()
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if code := do(r, "Bearer "+token); code != http.StatusOK {
		t.Errorf("valid jwt: got %d, want 200", code)
	}

	other := TokenService{Secret: []byte("other"), Issuer: "exitlens", Duration: time.Hour}
	forged, _, err := other.Sign()
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if code := do(r, "Bearer "+forged); code != http.StatusUnauthorized {
		t.Errorf("forged jwt: got %d, want 401", code)
	}
}

func TestAdminMiddlewareEmptySecretRejectsRawMatch(t *testing.T) {
	// with no static secret configured, only a valid JWT may pass
	r := protectedRouter("", testTokens())
	if code := do(r, "Bearer "); code != http.StatusUnauthorized {
		t.Errorf("empty token against empty secret: got %d, want 401", code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	token, exp, err := tokens.Sign()
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry should be in the future")
	}
	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("role: got %q, want admin", claims.Role)
	}
}
