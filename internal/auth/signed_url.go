package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const documentAudience = "document"

type documentClaims struct {
	FileURL string `json:"file"`
	jwt.RegisteredClaims
}

// URLSigner turns opaque document references into time-limited links served
// by GET /documents/view.
type URLSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewURLSigner(secret, publicBaseURL string, ttl time.Duration) *URLSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &URLSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Sign returns the signed link and its expiry.
func (s *URLSigner) Sign(fileURL string) (string, time.Time, error) {
	exp := s.now().Add(s.ttl)
	claims := documentClaims{
		FileURL: fileURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{documentAudience},
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.baseURL + "/documents/view?token=" + url.QueryEscape(token), exp, nil
}

// Verify returns the document reference a token grants access to.
func (s *URLSigner) Verify(token string) (string, error) {
	var claims documentClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(documentAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.FileURL == "" {
		return "", ErrInvalidToken
	}
	return claims.FileURL, nil
}
