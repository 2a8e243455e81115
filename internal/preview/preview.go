// Package preview manages the draft-mode cookie session. A valid session
// switches content queries to the drafts perspective with the viewer token;
// anything else resolves to published.
package preview

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"portfolio-server/pkg/sanity"
)

// CookieName is the preview session cookie.
const CookieName = "__sanity_preview"

var errBadCookie = errors.New("preview: invalid session cookie")

// Session is the signed cookie payload.
type Session struct {
	ID        uuid.UUID `json:"id"`
	ProjectID string    `json:"projectId"`
}

// Store signs and verifies preview sessions for one project.
type Store struct {
	secret    []byte
	projectID string
	token     string
}

// NewStore builds a session store. The secret signs cookie payloads; the
// viewer token is handed to the content store for draft reads.
func NewStore(secret, projectID, viewerToken string) *Store {
	return &Store{secret: []byte(secret), projectID: projectID, token: viewerToken}
}

// NewSession creates a fresh session bound to the store's project.
func (s *Store) NewSession() Session {
	return Session{ID: uuid.New(), ProjectID: s.projectID}
}

func (s *Store) sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Encode serializes and signs a session into a cookie value.
func (s *Store) Encode(sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(payload), nil
}

// Decode verifies a cookie value and returns the session it carries.
func (s *Store) Decode(value string) (Session, error) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return Session{}, errBadCookie
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Session{}, errBadCookie
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return Session{}, errBadCookie
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, errBadCookie
	}
	return sess, nil
}

// Options resolves the query options for a request given the raw cookie
// value. Absent, tampered, or foreign-project cookies resolve to published.
func (s *Store) Options(cookie string) (bool, sanity.QueryOptions) {
	published := sanity.QueryOptions{Perspective: sanity.PerspectivePublished}
	if cookie == "" {
		return false, published
	}
	sess, err := s.Decode(cookie)
	if err != nil || sess.ProjectID != s.projectID {
		return false, published
	}
	return true, sanity.QueryOptions{
		Perspective: sanity.PerspectiveDrafts,
		Stega:       true,
		Token:       s.token,
	}
}
