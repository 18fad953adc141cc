// client — HTTP-клиент REST-бэкенда с автоматическим обновлением токена.
//
// Поток запроса:
//  1. Signer подписывает запрос текущим access-токеном;
//  2. gatekeeper классифицирует ответ;
//  3. на 401 Coordinator пропускает ровно одно обновление токена, остальные
//     запросы ждут его итога в очереди;
//  4. исходный запрос повторяется один раз с новым токеном.
//
// Навигацию (sign-in/unauthorized) клиент не выполняет: он возвращает
// *NavigationError, а решение принимает верхний уровень.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/redact"
	"github.com/dEnchanter/aprilwind-admin/internal/session"
)

// maxBodyBytes — предел чтения тела ошибки/ответа обновления.
const maxBodyBytes = 4 << 20

// Options — параметры клиента. Пустые пути/цели заменяются значениями по умолчанию.
type Options struct {
	// BaseURL — корень REST API бэкенда, например https://api.aprilwind.ng/v1/.
	BaseURL string

	LoginPath   string // auth/login
	LogoutPath  string // auth/logout
	RefreshPath string // auth/refresh

	SignInTarget       string // /sign-in
	UnauthorizedTarget string // /unauthorized

	// RefreshTimeout ограничивает обмен refresh-токена; <=0 снимает ограничение.
	RefreshTimeout time.Duration

	// Transport — транспорт подписанных запросов (обычно цепочка interceptors).
	Transport http.RoundTripper
	// BareClient выполняет только обновление токена; nil даёт отдельный http.Client.
	BareClient *http.Client

	Coordinator *Coordinator
	Metrics     *Metrics
}

func (o *Options) defaults() {
	if o.LoginPath == "" {
		o.LoginPath = "auth/login"
	}

	if o.LogoutPath == "" {
		o.LogoutPath = "auth/logout"
	}

	if o.RefreshPath == "" {
		o.RefreshPath = "auth/refresh"
	}

	if o.SignInTarget == "" {
		o.SignInTarget = "/sign-in"
	}

	if o.UnauthorizedTarget == "" {
		o.UnauthorizedTarget = "/unauthorized"
	}

	if o.Transport == nil {
		o.Transport = http.DefaultTransport
	}

	if o.BareClient == nil {
		o.BareClient = &http.Client{Transport: http.DefaultTransport}
	}

	if o.Coordinator == nil {
		o.Coordinator = NewCoordinator()
	}
}

// Client — аутентифицированный клиент бэкенда. Безопасен для конкурентного использования.
type Client struct {
	base    *url.URL
	http    *http.Client
	store   session.Store
	signer  *Signer
	gate    gatekeeper
	coord   *Coordinator
	ref     refresher
	metrics *Metrics

	signIn       string
	unauthorized string
}

// New собирает клиент поверх хранилища сессии.
func New(store session.Store, opts Options) (*Client, error) {
	const op = "client.New"

	if store == nil {
		return nil, fmt.Errorf("%s: nil session store", op)
	}

	opts.defaults()

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: base url: %w", op, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, opts.BaseURL)
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:         base,
		http:         &http.Client{Transport: opts.Transport},
		store:        store,
		signer:       NewSigner(store),
		coord:        opts.Coordinator,
		metrics:      opts.Metrics,
		signIn:       opts.SignInTarget,
		unauthorized: opts.UnauthorizedTarget,
	}

	c.gate = newGatekeeper(
		c.resolve(opts.LoginPath).Path,
		c.resolve(opts.LogoutPath).Path,
		c.resolve(opts.RefreshPath).Path,
	)

	c.ref = refresher{
		bare:    opts.BareClient,
		url:     c.resolve(opts.RefreshPath).String(),
		timeout: opts.RefreshTimeout,
	}

	return c, nil
}

// Store — хранилище сессии клиента.
func (c *Client) Store() session.Store { return c.store }

// resolve принимает путь в экранированной форме (сегменты id через url.PathEscape).
func (c *Client) resolve(path string) *url.URL {
	path = strings.TrimPrefix(path, "/")

	ref, err := url.Parse(path)
	if err != nil {
		ref = &url.URL{Path: path}
	}

	return c.base.ResolveReference(ref)
}

// URL строит абсолютный адрес эндпойнта относительно BaseURL.
func (c *Client) URL(path string, query url.Values) string {
	u := c.resolve(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// Do выполняет запрос с подписью, обработкой 401/403 и единственным повтором.
//
// Ошибки:
//   - *NavigationError — сессия истекла (OutcomeAuthExpired) или доступ запрещён
//     (OutcomeForbidden);
//   - *APIError — прочие не-2xx ответы;
//   - обёрнутая транспортная ошибка: сеть или таймаут, без повторов.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.do(req.Context(), req)
	c.metrics.observeRequest(err)
	return resp, err
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	const op = "client.Do"

	if err := bufferBody(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	attempt, err := cloneRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sent := c.signer.Sign(ctx, attempt)

	resp, err := c.http.Do(attempt)
	if err != nil {
		log.From(ctx).Error("transport_failed",
			slog.String("op", op),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch v := c.gate.classify(req, resp.StatusCode, false); v {
	case verdictOK:
		return resp, nil
	case verdictRefresh:
		drain(resp)

		token, err := c.obtainToken(ctx, sent)
		if err != nil {
			return nil, err
		}

		return c.replay(ctx, req, token)
	default:
		return nil, c.failure(ctx, req, resp, v)
	}
}

// replay повторяет исходный запрос ровно один раз с новым токеном.
func (c *Client) replay(ctx context.Context, req *http.Request, token string) (*http.Response, error) {
	const op = "client.replay"

	attempt, err := cloneRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	setBearer(attempt, token)

	resp, err := c.http.Do(attempt)
	if err != nil {
		log.From(ctx).Error("transport_failed",
			slog.String("op", op),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v := c.gate.classify(req, resp.StatusCode, true)
	if v == verdictOK {
		return resp, nil
	}

	return nil, c.failure(ctx, req, resp, v)
}

// failure закрывает ответ и превращает его в ошибку.
func (c *Client) failure(ctx context.Context, req *http.Request, resp *http.Response, v verdict) error {
	if v == verdictForbidden {
		drain(resp)
		log.From(ctx).Warn("forbidden",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)

		return &NavigationError{
			Outcome: OutcomeForbidden,
			Target:  c.unauthorized,
			Err:     &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)},
		}
	}

	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	return ParseAPIError(resp.StatusCode, raw)
}

// obtainToken возвращает свежий access-токен для повтора: либо уже обновлённый
// кем-то другим, либо результат обновления, которое ведёт этот запрос или
// которого он дождался в очереди.
func (c *Client) obtainToken(ctx context.Context, sent string) (string, error) {
	const op = "client.obtainToken"

	if current := c.currentToken(ctx); current != "" && current != sent {
		return current, nil
	}

	type settlement struct {
		token string
		err   error
	}
	done := make(chan settlement, 1)

	leader := c.coord.BeginOrJoin(func(token string, err error) {
		done <- settlement{token: token, err: err}
	})

	if !leader {
		c.metrics.waiterAdded()
		defer c.metrics.waiterDone()

		select {
		case s := <-done:
			if s.err != nil {
				return "", c.expired(s.err)
			}

			return s.token, nil
		case <-ctx.Done():
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}

	// Лидер обновляет токен за всю очередь, поэтому отмена его запроса
	// не срывает сохранение токена и не очищает сессию остальным.
	rctx := context.WithoutCancel(ctx)

	// Обновление могло завершиться между первой проверкой и BeginOrJoin.
	if current := c.currentToken(rctx); current != "" && current != sent {
		c.coord.Settle(current, nil)
		return current, nil
	}

	token, err := c.refresh(rctx)
	c.coord.Settle(token, err)
	if err != nil {
		return "", c.expired(err)
	}

	return token, nil
}

func (c *Client) currentToken(ctx context.Context) string {
	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return ""
	}

	return token
}

// refresh выполняет обмен refresh-токена и сохраняет результат.
// При любой неудаче сессия очищается.
func (c *Client) refresh(ctx context.Context) (string, error) {
	const op = "client.refresh"

	lg := log.From(ctx)

	rt, err := c.store.RefreshToken(ctx)
	if err != nil {
		c.metrics.observeRefresh("store_error")
		c.invalidate(ctx)
		return "", fmt.Errorf("%s: %w: %w", op, ErrRefreshFailed, err)
	}

	if rt == "" {
		lg.Warn("refresh_token_missing",
			slog.String("op", op),
			slog.String("refresh_token", redact.Token(rt)),
		)
		c.metrics.observeRefresh("missing")
		c.invalidate(ctx)
		return "", fmt.Errorf("%s: %w", op, ErrNoRefreshToken)
	}

	lg.Info("refresh_started",
		slog.String("op", op),
		slog.String("refresh_token", redact.Token(rt)),
	)
	start := time.Now()

	out, err := c.ref.exchange(ctx, rt)
	if err != nil {
		lg.Error("refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.Duration("dur", time.Since(start)),
		)
		c.metrics.observeRefresh("failed")
		c.invalidate(ctx)
		return "", err
	}

	if err := c.store.SaveAccessToken(ctx, out.AccessToken); err != nil {
		c.metrics.observeRefresh("store_error")
		c.invalidate(ctx)
		return "", fmt.Errorf("%s: %w: %w", op, ErrRefreshFailed, err)
	}

	if out.RefreshToken != "" {
		if err := c.store.SaveRefreshToken(ctx, out.RefreshToken); err != nil {
			lg.Warn("refresh_token_save_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	lg.Info("refresh_succeeded",
		slog.String("op", op),
		slog.Bool("rotated", out.RefreshToken != ""),
		slog.Duration("dur", time.Since(start)),
	)
	c.metrics.observeRefresh("ok")

	return out.AccessToken, nil
}

// invalidate очищает сессию; ошибка хранилища только логируется.
func (c *Client) invalidate(ctx context.Context) {
	if err := session.Clear(ctx, c.store); err != nil {
		log.From(ctx).Error("session_clear_failed", slog.String("err", err.Error()))
		return
	}

	log.From(ctx).Info("session_cleared")
}

func (c *Client) expired(err error) error {
	return &NavigationError{Outcome: OutcomeAuthExpired, Target: c.signIn, Err: err}
}

// DoJSON — JSON-обёртка над Do: in сериализуется в тело (nil — без тела),
// ответ декодируется в out (при nil тело отбрасывается).
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	const op = "client.DoJSON"

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}

	return nil
}

// ValidateResponse проверяет декодированную запись по тегам validate.
func ValidateResponse(v any) error {
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}

// bufferBody делает тело запроса перечитываемым для повтора.
func bufferBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}

	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("buffer body: %w", err)
	}

	req.Body = io.NopCloser(bytes.NewReader(raw))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}

	return nil
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	out := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind body: %w", err)
		}
		out.Body = body
	}

	return out, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}
