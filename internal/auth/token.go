package auth // package auth implements issuing and verifying session tokens

import (
    "errors"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessTokenTTL is the fixed lifetime of a session token.  Expiry is the
// only invalidation mechanism: tokens are never stored server-side and
// there is no revocation list.
const AccessTokenTTL = time.Hour

// ErrTokenInvalid is returned by VerifyAccessToken when the token is
// malformed, signed with the wrong key, or signed with an unexpected
// algorithm.
var ErrTokenInvalid = errors.New("invalid token")

// ErrTokenExpired is returned by VerifyAccessToken when the token was
// well-formed and correctly signed but its expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// Claims is the identity carried inside a session token.  Email is the
// subject; privilege decisions are never made from token contents alone —
// the admin gate re-reads the live user record on every request.
type Claims struct {
    Email    string    // subject email, the authenticated identity
    IssuedAt time.Time // when the token was signed
    Expires  time.Time // when the token stops being accepted
}

// AccessToken bundles a signed session token with its expiry so callers can
// surface both to the client.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// IssueAccessToken builds and signs an HS256 JWT for the given email.  The
// token embeds the subject (sub), issued at (iat) and expiration (exp)
// claims; exp is exactly AccessTokenTTL from issuance.
func IssueAccessToken(secret, email string) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(AccessTokenTTL)
    claims := jwt.MapClaims{
        "sub": strings.ToLower(strings.TrimSpace(email)),
        "iat": now.Unix(),
        "exp": exp.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a session token.  It returns the
// embedded claims on success, ErrTokenExpired when the signature checks out
// but the token is past its expiry, and ErrTokenInvalid for everything else
// (bad signature, wrong algorithm, malformed structure, missing subject).
func VerifyAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything other than HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return Claims{}, ErrTokenExpired
        }
        return Claims{}, ErrTokenInvalid
    }
    if !tok.Valid {
        return Claims{}, ErrTokenInvalid
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrTokenInvalid
    }
    sub, _ := mc["sub"].(string)
    if sub == "" {
        return Claims{}, ErrTokenInvalid
    }
    var c Claims
    c.Email = sub
    if iat, ok := mc["iat"].(float64); ok {
        c.IssuedAt = time.Unix(int64(iat), 0).UTC()
    }
    if exp, ok := mc["exp"].(float64); ok {
        c.Expires = time.Unix(int64(exp), 0).UTC()
    }
    return c, nil
}
