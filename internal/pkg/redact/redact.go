// redact маскирует чувствительные значения перед записью в лог.
package redact

import "strings"

// Email оставляет первые два символа локальной части и домен.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Token никогда не возвращает сам токен: только факт его наличия.
func Token(tok string) string {
	if strings.TrimSpace(tok) == "" {
		return "[NO_TOKEN]"
	}

	return "[REDACTED_TOKEN]"
}

// Bearer маскирует значение заголовка Authorization, сохраняя схему.
func Bearer(header string) string {
	scheme, _, found := strings.Cut(header, " ")
	if !found {
		return Token(header)
	}

	return scheme + " " + Token("x")
}
