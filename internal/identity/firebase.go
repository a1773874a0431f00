// ABOUTME: Identity provider backed by the Firebase Identity Toolkit and Firestore REST APIs
// ABOUTME: Maps REST error messages onto auth provider codes and writes user profiles

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/newspulse/newspulse-client/internal/auth"
)

// FirebaseConfig holds the endpoints and credentials of a Firebase project.
type FirebaseConfig struct {
	APIKey       string
	ProjectID    string
	AuthURL      string
	FirestoreURL string
}

// Firebase talks to the Identity Toolkit for accounts and Firestore for
// profiles. The id token from the last create or sign-in is kept in memory
// and authorises the profile write.
type Firebase struct {
	cfg    FirebaseConfig
	client *http.Client
	logger *slog.Logger

	mu      sync.Mutex
	idToken string
	uid     string
}

// NewFirebase creates a Firebase provider. Pass nil client for http.DefaultClient.
func NewFirebase(cfg FirebaseConfig, client *http.Client, logger *slog.Logger) *Firebase {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.AuthURL = strings.TrimRight(cfg.AuthURL, "/")
	cfg.FirestoreURL = strings.TrimRight(cfg.FirestoreURL, "/")
	return &Firebase{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "firebase"),
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// CreateAccount registers email/password and returns the new uid.
func (f *Firebase) CreateAccount(ctx context.Context, email, password string) (string, error) {
	return f.accountCall(ctx, "accounts:signUp", email, password)
}

// SignIn authenticates email/password and returns the uid.
func (f *Firebase) SignIn(ctx context.Context, email, password string) (string, error) {
	return f.accountCall(ctx, "accounts:signInWithPassword", email, password)
}

// SignOut discards the held id token. Firebase has no server-side sign-out
// for password sessions.
func (f *Firebase) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idToken = ""
	f.uid = ""
	return nil
}

func (f *Firebase) accountCall(ctx context.Context, method, email, password string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/%s?key=%s", f.cfg.AuthURL, method, url.QueryEscape(f.cfg.APIKey))
	body, err := json.Marshal(credentialsRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	raw, status, err := f.do(ctx, http.MethodPost, endpoint, "", body)
	if err != nil {
		return "", err
	}
	if status >= 300 {
		return "", restError(raw, status)
	}

	res := gjson.ParseBytes(raw)
	uid := res.Get("localId").String()
	if uid == "" {
		return "", &auth.ProviderError{Code: "auth/internal-error", Message: "response missing localId"}
	}

	f.mu.Lock()
	f.idToken = res.Get("idToken").String()
	f.uid = uid
	f.mu.Unlock()

	f.logger.Debug("account call succeeded", "method", method, "uid", uid)
	return uid, nil
}

// WriteProfile stores profile as the Firestore document users/{uid}.
func (f *Firebase) WriteProfile(ctx context.Context, uid string, profile auth.Profile) error {
	f.mu.Lock()
	token, owner := f.idToken, f.uid
	f.mu.Unlock()
	if token == "" || owner != uid {
		return fmt.Errorf("%w: no id token for %s", ErrUnauthorized, uid)
	}

	doc := map[string]any{
		"fields": map[string]any{
			"firstName": map[string]string{"stringValue": profile.FirstName},
			"lastName":  map[string]string{"stringValue": profile.LastName},
			"email":     map[string]string{"stringValue": profile.Email},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents/users/%s",
		f.cfg.FirestoreURL, url.PathEscape(f.cfg.ProjectID), url.PathEscape(uid))
	raw, status, err := f.do(ctx, http.MethodPatch, endpoint, token, body)
	if err != nil {
		return err
	}
	if status >= 300 {
		return restError(raw, status)
	}
	return nil
}

func (f *Firebase) do(ctx context.Context, method, endpoint, bearer string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &auth.ProviderError{Code: CodeNetworkFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &auth.ProviderError{Code: CodeNetworkFailed, Message: err.Error()}
	}
	return raw, resp.StatusCode, nil
}

// CodeNetworkFailed is reported when the provider cannot be reached.
const CodeNetworkFailed = "auth/network-request-failed"

// restCodes maps Identity Toolkit error messages to provider codes.
var restCodes = map[string]string{
	"EMAIL_EXISTS":                auth.CodeEmailInUse,
	"WEAK_PASSWORD":               auth.CodeWeakPassword,
	"EMAIL_NOT_FOUND":             auth.CodeUserNotFound,
	"INVALID_PASSWORD":            auth.CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   auth.CodeInvalidCredential,
	"INVALID_EMAIL":               "auth/invalid-email",
	"USER_DISABLED":               "auth/user-disabled",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "auth/too-many-requests",
}

// restError decodes {"error":{"message":"CODE : detail"}}. Unknown codes keep
// the raw message so the forms can show it.
func restError(raw []byte, status int) error {
	msg := gjson.GetBytes(raw, "error.message").String()
	if msg == "" {
		return &auth.ProviderError{Code: "auth/internal-error", Message: fmt.Sprintf("unexpected status %d", status)}
	}

	key := msg
	if i := strings.Index(key, " "); i >= 0 {
		key = key[:i]
	}
	if code, ok := restCodes[key]; ok {
		return &auth.ProviderError{Code: code, Message: msg}
	}
	return &auth.ProviderError{Code: "auth/" + strings.ToLower(strings.ReplaceAll(key, "_", "-")), Message: msg}
}
