// Package fetch - platform.go provides applicant tracking system detection.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant tracking system.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformICIMS is the iCIMS ATS platform
	PlatformICIMS Platform = "icims"
	// PlatformTaleo is the Oracle Taleo ATS platform
	PlatformTaleo Platform = "taleo"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the applicant tracking system from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"),
		strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.Contains(host, "icims.com"):
		return PlatformICIMS
	case strings.Contains(host, "taleo.net"):
		return PlatformTaleo
	}

	return PlatformUnknown
}

// RequiresBrowser reports whether the platform renders its application
// form with JavaScript, so a plain HTTP fetch would see no fields.
func RequiresBrowser(platform Platform) bool {
	switch platform {
	case PlatformWorkday, PlatformICIMS, PlatformTaleo:
		return true
	default:
		return false
	}
}
