// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assetstore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
)

const (
	defaultCloudinaryAPI      = "https://api.cloudinary.com"
	defaultCloudinaryDelivery = "https://res.cloudinary.com"
)

// unsafeIDChars are replaced in public ids derived from file names.
var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// CloudinaryConfig holds the account credentials and tuning knobs.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string

	// APIBaseURL and DeliveryBaseURL default to the public Cloudinary hosts.
	APIBaseURL      string
	DeliveryBaseURL string

	// RetryAttempts and RetryDelay tune upload retries (defaults 3 and 1s).
	RetryAttempts uint
	RetryDelay    time.Duration

	HTTPClient *http.Client
}

// CloudinaryStore talks to the Cloudinary upload and destroy endpoints.
type CloudinaryStore struct {
	config CloudinaryConfig
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewCloudinaryStore creates a store; missing optional fields get defaults.
func NewCloudinaryStore(config CloudinaryConfig, logger *slog.Logger) *CloudinaryStore {
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultCloudinaryAPI
	}
	if config.DeliveryBaseURL == "" {
		config.DeliveryBaseURL = defaultCloudinaryDelivery
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}

	return &CloudinaryStore{config: config, client: client, logger: logger, now: time.Now}
}

// Locator returns the delivery prefix for this cloud.
func (store *CloudinaryStore) Locator() Locator {
	return Locator{BaseURL: strings.TrimSuffix(store.config.DeliveryBaseURL, "/") + "/" + store.config.CloudName}
}

type cloudinaryResponse struct {
	SecureURL    string `json:"secure_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Result       string `json:"result"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file with a signed request, retrying transient failures.
func (store *CloudinaryStore) Upload(context context.Context, file File) (Asset, error) {
	params := map[string]string{
		"public_id": PublicIDFromName(file.Name),
		"timestamp": strconv.FormatInt(store.now().Unix(), 10),
	}
	if store.config.UploadPreset != "" {
		params["upload_preset"] = store.config.UploadPreset
	}

	body, contentType, err := store.multipartBody(params, file)
	if err != nil {
		return Asset{}, err
	}

	endpoint := store.endpoint(file.Kind, "upload")

	var response cloudinaryResponse
	err = retry.Do(
		func() error {
			request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			request.Header.Set("Content-Type", contentType)

			response, err = store.do(request)
			return err
		},
		retry.Context(context),
		retry.Attempts(store.config.RetryAttempts),
		retry.Delay(store.config.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			store.logger.Warn("asset_upload_retry",
				slog.String("file", file.Name),
				slog.Uint64("attempt", uint64(attempt+1)),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return Asset{}, err
	}

	if response.SecureURL == "" || response.PublicID == "" {
		return Asset{}, fmt.Errorf("assetstore: cloudinary upload returned no url")
	}

	kind := file.Kind
	if parsed, ok := ParseKind(response.ResourceType); ok {
		kind = parsed
	}

	return Asset{URL: response.SecureURL, Kind: kind, PublicID: response.PublicID}, nil
}

// Delete destroys an asset. A "not found" result counts as success.
func (store *CloudinaryStore) Delete(context context.Context, publicID string, kind Kind) error {
	params := map[string]string{
		"public_id":  publicID,
		"timestamp":  strconv.FormatInt(store.now().Unix(), 10),
		"invalidate": "true",
	}

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", store.config.APIKey)
	form.Set("signature", Sign(params, store.config.APISecret))

	request, err := http.NewRequestWithContext(context, http.MethodPost, store.endpoint(kind, "destroy"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := store.do(request)
	if err != nil {
		return err
	}

	switch response.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("assetstore: cloudinary destroy %s returned %q", publicID, response.Result)
	}
}

// do executes a request; 4xx answers are marked unrecoverable for retry.
func (store *CloudinaryStore) do(request *http.Request) (cloudinaryResponse, error) {
	var payload cloudinaryResponse

	response, err := store.client.Do(request)
	if err != nil {
		return payload, fmt.Errorf("assetstore: cloudinary request: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return payload, fmt.Errorf("assetstore: read cloudinary response: %w", err)
	}
	_ = json.Unmarshal(raw, &payload)

	if response.StatusCode >= 300 {
		message := http.StatusText(response.StatusCode)
		if payload.Error != nil && payload.Error.Message != "" {
			message = payload.Error.Message
		}
		err := fmt.Errorf("assetstore: cloudinary %d: %s", response.StatusCode, message)
		if response.StatusCode < 500 && response.StatusCode != http.StatusTooManyRequests {
			return payload, retry.Unrecoverable(err)
		}
		return payload, err
	}

	return payload, nil
}

func (store *CloudinaryStore) endpoint(kind Kind, action string) string {
	return fmt.Sprintf("%s/v1_1/%s/%s/%s", strings.TrimSuffix(store.config.APIBaseURL, "/"), store.config.CloudName, kind, action)
}

func (store *CloudinaryStore) multipartBody(params map[string]string, file File) ([]byte, string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	if err := writer.WriteField("api_key", store.config.APIKey); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("signature", Sign(params, store.config.APISecret)); err != nil {
		return nil, "", err
	}

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buffer.Bytes(), writer.FormDataContentType(), nil
}

// Sign computes the Cloudinary request signature: the SHA-1 hex digest of
// the params sorted by key, joined as "k=v&k=v", followed by the secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(digest[:])
}

// PublicIDFromName derives a public id from a client file name: the base
// name without extension, sanitised, with a short random suffix so two
// uploads of "IMG_0001.jpg" do not overwrite each other.
func PublicIDFromName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Trim(unsafeIDChars.ReplaceAllString(base, "_"), "_")
	if base == "" || base == "." {
		base = "asset"
	}
	if len(base) > 60 {
		base = base[:60]
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "_" + suffix
}
