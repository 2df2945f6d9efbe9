package logger

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"keyword-radar/pkg/utils"
)

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s]+`)
	secretPattern = regexp.MustCompile(`(?i)(key|token|secret|signature)[=:]\s*[a-zA-Z0-9+/=_-]+`)
)

// SecurityLogger masks credentials and endpoints before they reach the log
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger creates a new security-aware logger
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		Logger: GetLogger(),
	}
}

// MaskSecret hides a credential but keeps a short fingerprint so two
// configured values can still be told apart in the log.
func (sl *SecurityLogger) MaskSecret(secret string) string {
	if secret == "" {
		return "unset"
	}
	return "secret#" + utils.ShortHash(secret)
}

// MaskEndpoint keeps the host and replaces path and query with a hash
func (sl *SecurityLogger) MaskEndpoint(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		return "endpoint#" + utils.ShortHash(rawURL)
	}

	return fmt.Sprintf("%s#%s", parsedURL.Host, utils.ShortHash(rawURL))
}

// MaskKeywords reports only the size of a keyword list and a two item sample
func (sl *SecurityLogger) MaskKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "no_keywords"
	}

	if len(keywords) <= 3 {
		return fmt.Sprintf("keywords_count=%d", len(keywords))
	}

	return fmt.Sprintf("keywords_count=%d,sample=[%s,%s,...]",
		len(keywords), keywords[0], keywords[1])
}

// MaskSensitiveData masks well-known sensitive field names in a map
func (sl *SecurityLogger) MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for key, value := range data {
		lowerKey := strings.ToLower(key)
		str, isString := value.(string)

		switch {
		case isString && (strings.Contains(lowerKey, "secret") ||
			strings.Contains(lowerKey, "api_key") ||
			strings.Contains(lowerKey, "client_id") ||
			strings.Contains(lowerKey, "customer")):
			masked[key] = sl.MaskSecret(str)
		case isString && (strings.Contains(lowerKey, "url") || strings.Contains(lowerKey, "endpoint")):
			masked[key] = sl.MaskEndpoint(str)
		case strings.Contains(lowerKey, "keyword"):
			if keywords, ok := value.([]string); ok {
				masked[key] = sl.MaskKeywords(keywords)
			} else {
				masked[key] = value
			}
		default:
			masked[key] = value
		}
	}

	return masked
}

// MaskLogMessage masks URLs and inline credentials in free text
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	masked := urlPattern.ReplaceAllStringFunc(message, sl.MaskEndpoint)
	return secretPattern.ReplaceAllString(masked, "${1}=***")
}

// SafeInfo logs info with automatic sensitive data masking
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	sl.withMasked(fields).Info(sl.MaskLogMessage(msg))
}

// SafeWarn logs warning with automatic sensitive data masking
func (sl *SecurityLogger) SafeWarn(msg string, fields map[string]interface{}) {
	sl.withMasked(fields).Warn(sl.MaskLogMessage(msg))
}

// SafeDebug logs debug with automatic sensitive data masking
func (sl *SecurityLogger) SafeDebug(msg string, fields map[string]interface{}) {
	sl.withMasked(fields).Debug(sl.MaskLogMessage(msg))
}

// SafeError logs error with automatic sensitive data masking
func (sl *SecurityLogger) SafeError(msg string, err error, fields map[string]interface{}) {
	l := sl.withMasked(fields)
	if err != nil {
		l = l.WithField("error", sl.MaskLogMessage(err.Error()))
	}
	l.Error(sl.MaskLogMessage(msg))
}

func (sl *SecurityLogger) withMasked(fields map[string]interface{}) *Logger {
	if len(fields) == 0 {
		return sl.Logger
	}
	return sl.Logger.WithFields(sl.MaskSensitiveData(fields))
}

var securityLoggerInstance *SecurityLogger

// GetSecurityLogger returns a singleton security logger
func GetSecurityLogger() *SecurityLogger {
	if securityLoggerInstance == nil {
		securityLoggerInstance = NewSecurityLogger()
	}
	return securityLoggerInstance
}
