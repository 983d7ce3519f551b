// SPDX-License-Identifier: Unlicense OR MIT

package gl

// The beginning of a GL_VERSION string identifies the flavor of the
// context that produced it:
//
//	OpenGL ES Common Lite profile: "OpenGL ES-CL major.minor"
//	OpenGL ES Common profile:      "OpenGL ES-CM major.minor"
//	OpenGL ES Full profile:        "OpenGL ES major.minor"
//	Desktop OpenGL:                "major.minor"
var versionPrefixes = [...]string{"OpenGL ES-CL ", "OpenGL ES-CM ", "OpenGL ES ", ""}

// ParseVersionString extracts the major.minor version from a GL_VERSION
// string. ok is false if the string matches none of the known forms.
func ParseVersionString(s string) (major, minor int, ok bool) {
	for _, prefix := range versionPrefixes {
		if major, minor, ok = parseVersionAt(s, prefix); ok {
			return major, minor, true
		}
	}
	return 0, 0, false
}

// parseVersionAt checks for a "major.minor" digit pattern immediately
// following prefix.
func parseVersionAt(s, prefix string) (major, minor int, ok bool) {
	n := len(prefix)
	if len(s) < n+3 || s[:n] != prefix {
		return 0, 0, false
	}
	if !isDigit(s[n]) || s[n+1] != '.' || !isDigit(s[n+2]) {
		return 0, 0, false
	}
	return int(s[n] - '0'), int(s[n+2] - '0'), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// GoString converts a NUL-terminated C string to a Go string.
func GoString(s []byte) string {
	i := 0
	for {
		if s[i] == 0 {
			break
		}
		i++
	}
	return string(s[:i])
}
