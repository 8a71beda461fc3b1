package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	flashCookieName = "flash"
	flashTTL        = 5 * time.Minute
)

// Flash is a one-shot notice shown on the next page view.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FlashStore keeps a single flash in an HMAC-signed cookie.
type FlashStore struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewFlashStore(secret []byte, secure bool) *FlashStore {
	return &FlashStore{secret: secret, secure: secure, now: time.Now}
}

// Set replaces any pending flash.
func (s *FlashStore) Set(w http.ResponseWriter, flash Flash) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    s.sign(flash, s.now().UTC()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flashTTL / time.Second),
	})
}

// Pop returns the pending flash, if any, and clears the cookie.
// Tampered or expired cookies are cleared and ignored.
func (s *FlashStore) Pop(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	flash, issuedAt, ok := s.parse(cookie.Value)
	if !ok || s.now().Sub(issuedAt) > flashTTL {
		return Flash{}, false
	}
	return flash, true
}

func (s *FlashStore) payload(typ, message, ts string) string {
	v := url.Values{}
	v.Set("t", typ)
	v.Set("m", message)
	v.Set("ts", ts)
	return v.Encode()
}

func (s *FlashStore) mac(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *FlashStore) sign(flash Flash, issuedAt time.Time) string {
	payload := s.payload(flash.Type, flash.Message, strconv.FormatInt(issuedAt.Unix(), 10))
	raw := payload + "&sig=" + s.mac(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func (s *FlashStore) parse(value string) (Flash, time.Time, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Flash{}, time.Time{}, false
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return Flash{}, time.Time{}, false
	}
	typ, message, ts, sig := values.Get("t"), values.Get("m"), values.Get("ts"), values.Get("sig")
	if typ == "" || ts == "" || sig == "" {
		return Flash{}, time.Time{}, false
	}

	expected := s.mac(s.payload(typ, message, ts))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return Flash{}, time.Time{}, false
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Flash{}, time.Time{}, false
	}
	return Flash{Type: typ, Message: message}, time.Unix(unix, 0), true
}
