package phoenix

import (
	"os"
	"path/filepath"
	"strings"
)

// FilterAlphaNum strips every character outside [A-Za-z0-9] from name.
// The result is the "nice" service identifier used for themed logo files,
// e.g. "ToS;DR" -> "ToSDR".
func FilterAlphaNum(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LogoResolver probes the themed logo directory for per-service images.
// Resolution is a pure function of (theme directory, theme name, nice
// service id) and is shared by every code path that surfaces a service
// image.
type LogoResolver struct {
	themeDir string
	theme    string
}

// NewLogoResolver creates a resolver rooted at themeDir/theme.
func NewLogoResolver(themeDir, theme string) *LogoResolver {
	return &LogoResolver{themeDir: themeDir, theme: theme}
}

// Resolve returns the public image path for a service name and whether a
// themed logo actually exists. The probe tries .svg before .png and
// defaults to .png when neither file is present.
func (l *LogoResolver) Resolve(name string) (image string, hasImage bool) {
	nice := FilterAlphaNum(name)
	base := filepath.Join(l.themeDir, l.theme, "img", "logo", nice)

	if fileExists(base + ".svg") {
		return "/img/logo/" + nice + ".svg", true
	}
	if fileExists(base + ".png") {
		return "/img/logo/" + nice + ".png", true
	}
	return "/img/logo/" + nice + ".png", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
