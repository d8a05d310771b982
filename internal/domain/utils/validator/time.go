package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var notifyTimeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// NormalizeNotifyTime validates a user-entered delivery time and returns it
// in the canonical zero-padded "HH:MM" form. Both "." and ":" are accepted
// as separators, so "9.30", "9:30" and "09:30" all normalize to "09:30".
func NormalizeNotifyTime(input string) (string, bool) {
	input = strings.ReplaceAll(strings.TrimSpace(input), ".", ":")

	match := notifyTimeRe.FindStringSubmatch(input)
	if match == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour > 23 || minute > 59 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func NotifyTime(input string, _ map[string]interface{}) bool {
	_, ok := NormalizeNotifyTime(input)
	return ok
}
