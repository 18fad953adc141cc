package client

import (
	"net/http"
	"strings"
)

// verdict — куда направить завершённый ответ.
type verdict int

const (
	verdictOK        verdict = iota // 2xx: вернуть ответ
	verdictFail                     // прочие не-2xx: APIError
	verdictForbidden                // 403: навигация на unauthorized
	verdictRefresh                  // 401: обновить токен и повторить
)

// gatekeeper классифицирует ответы. Пути auth-эндпойнтов хранятся
// нормализованными (без завершающего "/").
type gatekeeper struct {
	login   string
	logout  string
	refresh string
}

func newGatekeeper(login, logout, refresh string) gatekeeper {
	return gatekeeper{
		login:   normPath(login),
		logout:  normPath(logout),
		refresh: normPath(refresh),
	}
}

// classify:
//   - 2xx → ok;
//   - 403 на logout → fail (ошибка как есть, без петли logout→redirect);
//   - 403 → forbidden;
//   - 401, ещё не повторяли, не auth-эндпойнт → refresh;
//   - остальное → fail.
func (g gatekeeper) classify(req *http.Request, status int, retried bool) verdict {
	if status >= 200 && status < 300 {
		return verdictOK
	}

	path := normPath(req.URL.Path)

	switch status {
	case http.StatusForbidden:
		if path == g.logout {
			return verdictFail
		}

		return verdictForbidden
	case http.StatusUnauthorized:
		if retried || g.isAuthEndpoint(path) {
			return verdictFail
		}

		return verdictRefresh
	}

	return verdictFail
}

func (g gatekeeper) isAuthEndpoint(path string) bool {
	return path == g.login || path == g.logout || path == g.refresh
}

func normPath(p string) string {
	if p == "/" {
		return p
	}

	return strings.TrimSuffix(p, "/")
}
