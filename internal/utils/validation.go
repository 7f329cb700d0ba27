package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Route, stop and lane codes are positive integers.
	validCodePattern = regexp.MustCompile(`^[0-9]+$`)

	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const maxCodeDigits = 10

// ValidateCode parses a route, stop or lane code.
func ValidateCode(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("code cannot be empty")
	}
	if len(raw) > maxCodeDigits {
		return 0, fmt.Errorf("code too long (max %d digits)", maxCodeDigits)
	}
	if !validCodePattern.MatchString(raw) {
		return 0, errors.New("code must be a positive integer")
	}
	code, err := strconv.Atoi(raw)
	if err != nil || code <= 0 {
		return 0, errors.New("code must be a positive integer")
	}
	return code, nil
}

// ParseCodeParam reads an optional code from the query. Absent means 0.
func ParseCodeParam(params url.Values, key string, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	raw := params.Get(key)
	if raw == "" {
		return 0, fieldErrors
	}

	code, err := ValidateCode(raw)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return code, fieldErrors
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("query cannot be empty")
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}
	return SanitizeInput(query), nil
}
